package domain

import "time"

type InteractionKind string

const (
	InteractionLike      InteractionKind = "like"
	InteractionDislike   InteractionKind = "dislike"
	InteractionSuperlike InteractionKind = "superlike"
)

// Valid reports whether the kind is one of the known interaction kinds.
func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionLike, InteractionDislike, InteractionSuperlike:
		return true
	}
	return false
}

// IsLike reports whether the interaction counts towards a mutual match.
// Only a plain like does; a superlike is recorded as its own kind but never
// participates in match detection.
func (k InteractionKind) IsLike() bool {
	return k == InteractionLike
}

// Interaction is a single recorded swipe from one user toward another.
// The log is append-only; at most one interaction per (actor, target) pair.
type Interaction struct {
	ID        string          `json:"id" db:"id"`
	ActorID   string          `json:"actor_id" db:"actor_id"`
	TargetID  string          `json:"target_id" db:"target_id"`
	Kind      InteractionKind `json:"kind" db:"kind"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
