package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"probe-metrics/internal/shared/filestorages"
)

const (
	indexMarkerFile = "_index.json"
	mappingFile     = "_mapping.json"
)

// fileMeasureStore lays measures out as <index>/<collection>/<ulid>.json.
// ULIDs sort by creation time, so a directory listing is in write order.
type fileMeasureStore struct {
	fileStorage filestorages.FileStorage
}

func NewFileMeasureStore(fileStorage filestorages.FileStorage) MeasureStore {
	return &fileMeasureStore{fileStorage: fileStorage}
}

func (s *fileMeasureStore) CreateRecord(ctx context.Context, index, collection string, body map[string]any) error {
	if err := validateLocation(index, collection); err != nil {
		return err
	}
	return s.putRecord(ctx, index, collection, body)
}

func (s *fileMeasureStore) BulkCreate(ctx context.Context, index, collection string, records []map[string]any) error {
	if err := validateLocation(index, collection); err != nil {
		return err
	}

	// Everything is encoded up front so a bad record fails the batch before
	// any file is written.
	payloads := make([][]byte, len(records))
	for i, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("record %d of %d: failed to marshal record: %w", i+1, len(records), err)
		}
		payloads[i] = jsonData
	}

	written := make([]string, 0, len(records))
	for i, record := range records {
		key := recordKey(index, collection, record)
		if _, err := s.fileStorage.Put(ctx, key, bytes.NewReader(payloads[i]), filestorages.PutOptions{AllowOverwrite: false}); err != nil {
			err = fmt.Errorf("record %d of %d: failed to put record: %w", i+1, len(records), err)
			return errors.Join(err, s.rollback(ctx, written))
		}
		written = append(written, key)
	}
	return nil
}

// rollback removes the records of a failed batch so that the retry, which
// carries the same records, does not duplicate them.
func (s *fileMeasureStore) rollback(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := s.fileStorage.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to roll back %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *fileMeasureStore) IndexExists(ctx context.Context, index string) (bool, error) {
	if err := validateLocation(index); err != nil {
		return false, err
	}
	exists, err := s.fileStorage.Exists(ctx, index+"/"+indexMarkerFile)
	if err != nil {
		return false, fmt.Errorf("failed to check index: %w", err)
	}
	return exists, nil
}

func (s *fileMeasureStore) CreateIndex(ctx context.Context, index string) error {
	if err := validateLocation(index); err != nil {
		return err
	}
	marker, err := json.Marshal(map[string]any{"index": index})
	if err != nil {
		return err
	}
	_, err = s.fileStorage.Put(ctx, index+"/"+indexMarkerFile, bytes.NewReader(marker), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil && !errors.Is(err, filestorages.ErrFileAlreadyExists) {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

func (s *fileMeasureStore) ListCollections(ctx context.Context, index string) ([]string, error) {
	if err := validateLocation(index); err != nil {
		return nil, err
	}
	exists, err := s.IndexExists(ctx, index)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrIndexNotFound, index)
	}
	collections, err := s.fileStorage.ListDirs(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

func (s *fileMeasureStore) UpdateMapping(ctx context.Context, index, collection string, mapping map[string]any) error {
	if err := validateLocation(index, collection); err != nil {
		return err
	}
	jsonData, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	key := fmt.Sprintf("%s/%s/%s", index, collection, mappingFile)
	if _, err := s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true}); err != nil {
		return fmt.Errorf("failed to put mapping: %w", err)
	}
	return nil
}

func (s *fileMeasureStore) putRecord(ctx context.Context, index, collection string, body map[string]any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	key := recordKey(index, collection, body)
	if _, err := s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false}); err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}
	return nil
}

func recordKey(index, collection string, body map[string]any) string {
	return fmt.Sprintf("%s/%s/%s.json", index, collection, recordID(body))
}
