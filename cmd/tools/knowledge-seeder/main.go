// cmd/tools/knowledge-seeder/main.go
//
// Seeds the knowledge tables from the JSON files in configs/ and drops the
// cached hall snapshot so workers pick up the new data.
//
// Usage:
//
//	knowledge-seeder validate -halls configs/halls.json -intents configs/intents.json -gazetteer configs/gazetteer.json
//	knowledge-seeder seed -config configs
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lib/pq"

	"campus-assistant/internal/common/config"
	"campus-assistant/internal/common/database"
	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/common/validation"
	"campus-assistant/internal/models"
	"campus-assistant/internal/nlu/gazetteer"
	"campus-assistant/internal/nlu/intent"
	"campus-assistant/internal/store"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	hallsSeed := seedCmd.String("halls", "configs/halls.json", "Path to halls seed file")
	intentsSeed := seedCmd.String("intents", "configs/intents.json", "Path to intent rules seed file")
	gazetteerSeed := seedCmd.String("gazetteer", "configs/gazetteer.json", "Path to gazetteer seed file")

	hallsValidate := validateCmd.String("halls", "configs/halls.json", "Path to halls seed file")
	intentsValidate := validateCmd.String("intents", "configs/intents.json", "Path to intent rules seed file")
	gazetteerValidate := validateCmd.String("gazetteer", "configs/gazetteer.json", "Path to gazetteer seed file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		if err := runSeed(*hallsSeed, *intentsSeed, *gazetteerSeed); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := runValidate(*hallsValidate, *intentsValidate, *gazetteerValidate); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All seed files are valid")

	default:
		help()
		os.Exit(1)
	}
}

func help() {
	fmt.Println("knowledge-seeder manages the campus assistant knowledge tables.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  seed      Validate and load the seed files into PostgreSQL, then drop the hall cache")
	fmt.Println("  validate  Schema-check the seed files without touching the database")
}

func runValidate(hallsPath, intentsPath, gazetteerPath string) error {
	checks := []struct {
		path     string
		validate func([]byte) (*validation.ValidationResult, error)
	}{
		{hallsPath, validation.ValidateHalls},
		{intentsPath, validation.ValidateIntentRules},
		{gazetteerPath, validation.ValidateGazetteer},
	}

	for _, check := range checks {
		data, err := os.ReadFile(check.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", check.path, err)
		}
		result, err := check.validate(data)
		if err != nil {
			return fmt.Errorf("validate %s: %w", check.path, err)
		}
		if !result.Valid {
			for _, ve := range result.Errors {
				fmt.Printf("%s: %s: %s\n", check.path, ve.Field, ve.Message)
			}
			return fmt.Errorf("%s failed schema validation", check.path)
		}
		fmt.Printf("Validated %s\n", check.path)
	}
	return nil
}

func runSeed(hallsPath, intentsPath, gazetteerPath string) error {
	if err := runValidate(hallsPath, intentsPath, gazetteerPath); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	if err := createTables(ctx, pg.DB); err != nil {
		return err
	}

	tx, err := pg.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	hallCount, err := seedHalls(ctx, tx, hallsPath)
	if err != nil {
		return err
	}
	intentCount, err := seedIntents(ctx, tx, intentsPath)
	if err != nil {
		return err
	}
	gazetteerCount, err := seedGazetteer(ctx, tx, gazetteerPath)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Printf("Seeded %d halls, %d intents, %d gazetteer slot types\n", hallCount, intentCount, gazetteerCount)

	dropHallCache(ctx, cfg)
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS halls (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			short_description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			catering_type TEXT NOT NULL DEFAULT '',
			tags TEXT[] NOT NULL DEFAULT '{}',
			lifestyle_tags TEXT[] NOT NULL DEFAULT '{}',
			facilities TEXT[] NOT NULL DEFAULT '{}',
			room_features_common TEXT[] NOT NULL DEFAULT '{}',
			services TEXT[] NOT NULL DEFAULT '{}',
			room_types JSONB NOT NULL DEFAULT '[]',
			official_url TEXT NOT NULL DEFAULT '',
			contact_email TEXT NOT NULL DEFAULT '',
			contact_phone TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS intent_rules (
			position INTEGER PRIMARY KEY,
			intent TEXT NOT NULL,
			patterns JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS gazetteer_entries (
			position INTEGER PRIMARY KEY,
			slot_type TEXT NOT NULL,
			items JSONB NOT NULL DEFAULT '[]'
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

func seedHalls(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var halls []models.Hall
	if err := json.Unmarshal(data, &halls); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM halls`); err != nil {
		return 0, fmt.Errorf("clear halls: %w", err)
	}

	for i, h := range halls {
		roomTypes, err := json.Marshal(h.RoomTypes)
		if err != nil {
			return 0, fmt.Errorf("encode room types for %s: %w", h.Name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO halls (position, name, short_description, address, catering_type,
			                   tags, lifestyle_tags, facilities, room_features_common, services,
			                   room_types, official_url, contact_email, contact_phone)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			i, h.Name, h.ShortDescription, h.Address, h.CateringType,
			pq.Array(h.Tags), pq.Array(h.LifestyleTags), pq.Array(h.Facilities),
			pq.Array(h.RoomFeaturesCommon), pq.Array(h.Services),
			roomTypes, h.OfficialURL, h.ContactEmail, h.ContactPhone,
		)
		if err != nil {
			return 0, fmt.Errorf("insert hall %s: %w", h.Name, err)
		}
	}
	return len(halls), nil
}

func seedIntents(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var docs []intent.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM intent_rules`); err != nil {
		return 0, fmt.Errorf("clear intent_rules: %w", err)
	}

	for i, doc := range docs {
		patterns, err := json.Marshal(doc.Patterns)
		if err != nil {
			return 0, fmt.Errorf("encode patterns for %s: %w", doc.Intent, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO intent_rules (position, intent, patterns)
			VALUES ($1, $2, $3)`,
			i, doc.Intent, patterns,
		)
		if err != nil {
			return 0, fmt.Errorf("insert intent %s: %w", doc.Intent, err)
		}
	}
	return len(docs), nil
}

func seedGazetteer(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var docs []gazetteer.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM gazetteer_entries`); err != nil {
		return 0, fmt.Errorf("clear gazetteer_entries: %w", err)
	}

	for i, doc := range docs {
		items, err := json.Marshal(doc.Items)
		if err != nil {
			return 0, fmt.Errorf("encode items for %s: %w", doc.SlotType, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO gazetteer_entries (position, slot_type, items)
			VALUES ($1, $2, $3)`,
			i, doc.SlotType, items,
		)
		if err != nil {
			return 0, fmt.Errorf("insert gazetteer slot type %s: %w", doc.SlotType, err)
		}
	}
	return len(docs), nil
}

// dropHallCache is best-effort: seeding succeeds even when Redis is down,
// the cache then expires on its own TTL.
func dropHallCache(ctx context.Context, cfg *config.Config) {
	redis, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		fmt.Printf("Warning: hall cache not dropped: %v\n", err)
		return
	}
	defer redis.Close()

	cached := store.NewCachedStore(nil, redis.Client, 0, logger.NewNoOpLogger())
	if err := cached.Invalidate(ctx); err != nil {
		fmt.Printf("Warning: hall cache not dropped: %v\n", err)
		return
	}
	fmt.Println("Hall cache dropped")
}
