// Package store persists household records in Redis. Each entity owns a
// named list of JSON records; a record carries a generated id and a creation
// timestamp, and nothing upstream assumes more about storage than that.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hearthd/hearth-intent/internal/nlp"
)

// ErrRecordNotFound is returned for updates and removals of unknown ids.
var ErrRecordNotFound = errors.New("record not found")

// Record is one persisted entry in a named list.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

// RecordStore reads and writes record lists in Redis.
type RecordStore struct {
	client *redis.Client
	clock  nlp.Clock
}

// NewRecordStore connects to Redis and verifies the connection.
func NewRecordStore(redisURL string, clock nlp.Clock) (*RecordStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RecordStore{client: client, clock: clock}, nil
}

func (s *RecordStore) listKey(list string) string {
	return fmt.Sprintf("records:%s", list)
}

// List returns every record in the named list, oldest first.
func (s *RecordStore) List(ctx context.Context, list string) ([]Record, error) {
	data, err := s.client.Get(ctx, s.listKey(list)).Result()
	if err == redis.Nil {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load list %s: %w", list, err)
	}

	var records []Record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to parse list %s: %w", list, err)
	}
	return records, nil
}

// Append adds a new record with a generated id and creation timestamp, and
// returns it.
func (s *RecordStore) Append(ctx context.Context, list string, data any) (Record, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Record{}, fmt.Errorf("failed to marshal record: %w", err)
	}

	records, err := s.List(ctx, list)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now().UTC(),
		Data:      raw,
	}
	records = append(records, rec)

	if err := s.saveList(ctx, list, records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update replaces the data of the record with the given id.
func (s *RecordStore) Update(ctx context.Context, list, id string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	records, err := s.List(ctx, list)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records[i].Data = raw
			return s.saveList(ctx, list, records)
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, list, id)
}

// Remove deletes the record with the given id.
func (s *RecordStore) Remove(ctx context.Context, list, id string) error {
	records, err := s.List(ctx, list)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return s.saveList(ctx, list, records)
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, list, id)
}

func (s *RecordStore) saveList(ctx context.Context, list string, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal list %s: %w", list, err)
	}
	if err := s.client.Set(ctx, s.listKey(list), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save list %s: %w", list, err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (s *RecordStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RecordStore) Close() error {
	return s.client.Close()
}
