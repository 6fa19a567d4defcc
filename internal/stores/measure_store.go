package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/ulid"
)

var (
	ErrInvalidLocation = errors.New("invalid index or collection name")
	ErrIndexNotFound   = errors.New("index not found")
)

// MeasureStore persists measure records. An index groups collections; each
// probe writes to the collection named after it.
//
//go:generate mockgen -source=measure_store.go -destination=./mocks/measure_store_mock.go -package=mocks
type MeasureStore interface {
	// CreateRecord stores body as a single record.
	CreateRecord(ctx context.Context, index, collection string, body map[string]any) error
	// BulkCreate stores one record per entry of records.
	BulkCreate(ctx context.Context, index, collection string, records []map[string]any) error
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string) error
	// ListCollections returns the collections of index, sorted by name.
	ListCollections(ctx context.Context, index string) ([]string, error)
	// UpdateMapping creates collection if needed and stores its mapping.
	UpdateMapping(ctx context.Context, index, collection string, mapping map[string]any) error
}

func validateLocation(names ...string) error {
	for _, name := range names {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, "_") {
			return fmt.Errorf("%w: %q", ErrInvalidLocation, name)
		}
	}
	return nil
}

// recordID derives a record id from the record's flush timestamp so ids sort
// in flush order.
func recordID(body map[string]any) string {
	if timestamp, ok := body[models.FieldTimestamp].(int64); ok {
		return ulid.NewULIDAt(time.UnixMilli(timestamp))
	}
	return ulid.NewULID()
}
