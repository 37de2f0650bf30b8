package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeRecomputeRating = "review:recompute_rating"

// RatingPayload names the service whose review statistics are stale.
type RatingPayload struct {
	ServiceID string `json:"serviceId"`
}

// NewRecomputeRatingTask builds a task that is deduplicated per service for
// a short window so a burst of reviews triggers one recompute.
func NewRecomputeRatingTask(serviceID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(RatingPayload{ServiceID: serviceID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRecomputeRating, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Unique(30 * time.Second),
		asynq.ProcessIn(2 * time.Second),
	}
	return task, opts, nil
}

// ParseRatingPayload decodes a recompute task payload.
func ParseRatingPayload(task *asynq.Task) (RatingPayload, error) {
	var p RatingPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid rating payload: %w", err)
	}
	if p.ServiceID == "" {
		return p, fmt.Errorf("invalid rating payload: missing serviceId")
	}
	return p, nil
}
