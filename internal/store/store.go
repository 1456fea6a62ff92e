// Package store provides read access to the hall knowledge collection. The
// synthesis pipeline only ever reads; writes happen out of band through the
// knowledge-seeder tool.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"campus-assistant/internal/common/validation"
	"campus-assistant/internal/models"
)

// HallReader returns every hall record in stable collection order. Order
// matters: record matching and shortlist tie-breaks follow it.
type HallReader interface {
	Halls(ctx context.Context) ([]models.Hall, error)
}

// StaticStore serves a fixed snapshot loaded at startup. Used for local
// development and tests; production deployments read from Postgres.
type StaticStore struct {
	halls []models.Hall
}

func NewStaticStore(halls []models.Hall) *StaticStore {
	return &StaticStore{halls: halls}
}

// LoadStaticStore reads and validates a hall collection from a JSON file.
func LoadStaticStore(path string) (*StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hall collection %s: %w", path, err)
	}

	result, err := validation.ValidateHalls(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("hall collection %s failed validation: %d errors, first: %s",
			path, len(result.Errors), result.Errors[0].Message)
	}

	var halls []models.Hall
	if err := json.Unmarshal(data, &halls); err != nil {
		return nil, fmt.Errorf("failed to decode hall collection %s: %w", path, err)
	}

	return &StaticStore{halls: halls}, nil
}

func (s *StaticStore) Halls(_ context.Context) ([]models.Hall, error) {
	out := make([]models.Hall, len(s.halls))
	copy(out, s.halls)
	return out, nil
}
