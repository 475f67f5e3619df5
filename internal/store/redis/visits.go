package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
)

// DefaultVisitTTL bounds how long a mirrored visit record lives without
// being refreshed. Matches the 30-day recency cutoff.
const DefaultVisitTTL = 30 * 24 * time.Hour

// Store mirrors visit records to redis so other local consumers (prompt
// widgets, completion rankers) can read recency without touching the
// JSON state files.
type Store struct {
	client *redis.Client
}

// NewStore creates a new visit mirror over an established client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// RecordVisit increments the visit counter for path and refreshes its
// last-visited timestamp.
func (s *Store) RecordVisit(ctx context.Context, path string) error {
	rec, err := s.GetVisit(ctx, path)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &domain.RecentLocation{
			Path:        path,
			VisitCount:  0,
			DisplayName: domain.DisplayNameFor(path),
		}
	}
	rec.VisitCount++
	rec.LastVisited = time.Now()
	return s.SaveVisit(ctx, rec)
}

// SaveVisit stores one visit record.
func (s *Store) SaveVisit(ctx context.Context, rec *domain.RecentLocation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal visit: %w", err)
	}

	key := VisitKey(rec.Path)
	if err := s.client.Set(ctx, key, data, DefaultVisitTTL).Err(); err != nil {
		return fmt.Errorf("failed to save visit: %w", err)
	}
	if err := s.client.SAdd(ctx, AllVisitsKey(), key).Err(); err != nil {
		return fmt.Errorf("failed to add visit to set: %w", err)
	}
	return nil
}

// GetVisit retrieves the visit record for a path, or nil when absent.
func (s *Store) GetVisit(ctx context.Context, path string) (*domain.RecentLocation, error) {
	data, err := s.client.Get(ctx, VisitKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}

	var rec domain.RecentLocation
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal visit: %w", err)
	}
	return &rec, nil
}

// GetAllVisits retrieves every mirrored visit record. Records whose key
// has expired are pruned from the index set as they are encountered.
func (s *Store) GetAllVisits(ctx context.Context) ([]*domain.RecentLocation, error) {
	keys, err := s.client.SMembers(ctx, AllVisitsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get visit keys: %w", err)
	}
	if len(keys) == 0 {
		return []*domain.RecentLocation{}, nil
	}

	visits := make([]*domain.RecentLocation, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				_ = s.client.SRem(ctx, AllVisitsKey(), key).Err()
			}
			continue
		}
		var rec domain.RecentLocation
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		visits = append(visits, &rec)
	}
	return visits, nil
}

// DeleteVisit removes the mirrored record for a path.
func (s *Store) DeleteVisit(ctx context.Context, path string) error {
	key := VisitKey(path)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	if err := s.client.SRem(ctx, AllVisitsKey(), key).Err(); err != nil {
		return fmt.Errorf("failed to remove visit from set: %w", err)
	}
	return nil
}

// SaveVisitsMany stores multiple visit records in one pipeline.
func (s *Store) SaveVisitsMany(ctx context.Context, recs []*domain.RecentLocation) error {
	pipe := s.client.Pipeline()

	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal visit %s: %w", rec.Path, err)
		}
		key := VisitKey(rec.Path)
		pipe.Set(ctx, key, data, DefaultVisitTTL)
		pipe.SAdd(ctx, AllVisitsKey(), key)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save visits: %w", err)
	}
	return nil
}
