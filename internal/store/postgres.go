package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campus-assistant/internal/models"
	"campus-assistant/internal/nlu/gazetteer"
	"campus-assistant/internal/nlu/intent"

	"github.com/lib/pq"
)

// PostgresStore reads the hall collection and the NLU seed tables from
// PostgreSQL. Row order is pinned by the position column so collection order
// survives the round trip through the database.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Halls(ctx context.Context) ([]models.Hall, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, short_description, address, catering_type,
		       tags, lifestyle_tags, facilities, room_features_common, services,
		       room_types, official_url, contact_email, contact_phone
		FROM halls
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query halls: %w", err)
	}
	defer rows.Close()

	var halls []models.Hall
	for rows.Next() {
		var h models.Hall
		var roomTypes []byte
		err := rows.Scan(
			&h.Name, &h.ShortDescription, &h.Address, &h.CateringType,
			pq.Array(&h.Tags), pq.Array(&h.LifestyleTags), pq.Array(&h.Facilities),
			pq.Array(&h.RoomFeaturesCommon), pq.Array(&h.Services),
			&roomTypes, &h.OfficialURL, &h.ContactEmail, &h.ContactPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hall row: %w", err)
		}
		if len(roomTypes) > 0 {
			if err := json.Unmarshal(roomTypes, &h.RoomTypes); err != nil {
				return nil, fmt.Errorf("failed to decode room types for %s: %w", h.Name, err)
			}
		}
		halls = append(halls, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hall rows: %w", err)
	}

	return halls, nil
}

// IntentDocuments loads the intent rule seed rows in configured order.
func (s *PostgresStore) IntentDocuments(ctx context.Context) ([]intent.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT intent, patterns
		FROM intent_rules
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query intent rules: %w", err)
	}
	defer rows.Close()

	var docs []intent.Document
	for rows.Next() {
		var doc intent.Document
		var patterns []byte
		if err := rows.Scan(&doc.Intent, &patterns); err != nil {
			return nil, fmt.Errorf("failed to scan intent rule row: %w", err)
		}
		if len(patterns) > 0 {
			if err := json.Unmarshal(patterns, &doc.Patterns); err != nil {
				return nil, fmt.Errorf("failed to decode patterns for %s: %w", doc.Intent, err)
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intent rule rows: %w", err)
	}

	return docs, nil
}

// GazetteerDocuments loads the gazetteer seed rows in configured order.
func (s *PostgresStore) GazetteerDocuments(ctx context.Context) ([]gazetteer.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot_type, items
		FROM gazetteer_entries
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query gazetteer entries: %w", err)
	}
	defer rows.Close()

	var docs []gazetteer.Document
	for rows.Next() {
		var doc gazetteer.Document
		var items []byte
		if err := rows.Scan(&doc.SlotType, &items); err != nil {
			return nil, fmt.Errorf("failed to scan gazetteer row: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &doc.Items); err != nil {
				return nil, fmt.Errorf("failed to decode items for %s: %w", doc.SlotType, err)
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gazetteer rows: %w", err)
	}

	return docs, nil
}
