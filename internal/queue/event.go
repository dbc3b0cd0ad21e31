// Package queue defines the activity feed exchanged over the message
// broker and the consumer that records it.
package queue

import "time"

// ActivityQueueName is the durable queue activity events are routed to.
const ActivityQueueName = "kruger.activity"

// Activity kinds.
const (
	KindSightingReported     = "sighting.reported"
	KindSightingUpdated      = "sighting.updated"
	KindSightingDeleted      = "sighting.deleted"
	KindReviewAdded          = "review.added"
	KindAccommodationCreated = "accommodation.created"
)

// ActivityEvent is published after a successful write. It carries enough
// context for a consumer to log the change without querying the database.
type ActivityEvent struct {
	Kind       string    `json:"kind"`
	SubjectID  int64     `json:"subject_id"`
	ActorID    *int64    `json:"actor_id,omitempty"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}
