// Package registry holds the in-memory activity store shared by all requests.
package registry

import (
	"context"
	"sync"

	"example.com/signup/internal/domain"
	"example.com/signup/internal/observability"
)

// Registry maps activity names to their records. It is seeded once at
// startup and lives for the process lifetime; a single RWMutex serializes
// mutations so a signup's existence, duplicate and capacity checks and the
// roster append happen atomically.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// New builds a Registry from a seed mapping. The seed is copied, so the
// caller may keep or discard it freely.
func New(seed map[string]domain.Activity) *Registry {
	r := &Registry{activities: make(map[string]*domain.Activity, len(seed))}
	for name, activity := range seed {
		clone := activity.Clone()
		r.activities[name] = &clone
		observability.SetEnrollment(name, len(clone.Participants))
	}
	return r
}

// List returns a snapshot of the full name to record mapping. Rosters are
// copied; callers cannot mutate registry state through the result.
func (r *Registry) List(ctx context.Context) map[string]domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		out[name] = activity.Clone()
	}
	return out
}

// Get returns a copy of one activity record.
func (r *Registry) Get(ctx context.Context, name string) (domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	return activity.Clone(), nil
}

// Signup appends the lowercased email to the activity's roster. Checks run
// in a fixed order: unknown activity, duplicate enrollment, capacity. An
// activity already over capacity keeps its roster but rejects new signups.
func (r *Registry) Signup(ctx context.Context, name, email string) error {
	normalized := domain.NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.ErrActivityNotFound
	}
	if activity.HasParticipant(normalized) {
		return domain.ErrAlreadySignedUp
	}
	if len(activity.Participants) >= activity.MaxParticipants {
		return domain.ErrActivityFull
	}

	activity.Participants = append(activity.Participants, normalized)
	observability.SetEnrollment(name, len(activity.Participants))
	return nil
}

// Unregister removes one occurrence of the lowercased email from the
// activity's roster, preserving the relative order of the rest.
func (r *Registry) Unregister(ctx context.Context, name, email string) error {
	normalized := domain.NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.ErrActivityNotFound
	}

	for i, p := range activity.Participants {
		if p == normalized {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			observability.SetEnrollment(name, len(activity.Participants))
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

// Reset replaces all registry state with the given seed. Tests use it to
// restore a known fixture; production code never calls it.
func (r *Registry) Reset(seed map[string]domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activities = make(map[string]*domain.Activity, len(seed))
	for name, activity := range seed {
		clone := activity.Clone()
		r.activities[name] = &clone
		observability.SetEnrollment(name, len(clone.Participants))
	}
}
