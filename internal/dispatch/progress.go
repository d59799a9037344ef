package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type State string

const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

type Progress struct {
	JobID      string    `json:"job_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Total      int       `json:"total"`
	Dispatched int       `json:"dispatched"`
	Failed     int       `json:"failed"`
	State      State     `json:"state"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var ErrProgressNotFound = errors.New("dispatch progress not found")

type ProgressStore interface {
	Save(ctx context.Context, p Progress) error
	Get(ctx context.Context, jobID string) (*Progress, error)
}

type nopProgress struct{}

func (nopProgress) Save(context.Context, Progress) error { return nil }

func (nopProgress) Get(context.Context, string) (*Progress, error) {
	return nil, ErrProgressNotFound
}

const progressTTL = 24 * time.Hour

type RedisProgressStore struct {
	client *redis.Client
}

func NewRedisProgressStore(client *redis.Client) *RedisProgressStore {
	return &RedisProgressStore{client: client}
}

func progressKey(jobID string) string {
	return "dispatch:job:" + jobID
}

func (s *RedisProgressStore) Save(ctx context.Context, p Progress) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	return s.client.Set(ctx, progressKey(p.JobID), b, progressTTL).Err()
}

func (s *RedisProgressStore) Get(ctx context.Context, jobID string) (*Progress, error) {
	raw, err := s.client.Get(ctx, progressKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	return &p, nil
}
