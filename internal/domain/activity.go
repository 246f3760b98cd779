// Package domain defines the business objects for the signup service.
package domain

import (
	"errors"
	"strings"
)

var (
	// ErrActivityNotFound is returned when the named activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrParticipantNotFound is returned when the email is not on the roster.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrAlreadySignedUp indicates the email is already on the roster.
	ErrAlreadySignedUp = errors.New("already signed up for this activity")
	// ErrActivityFull indicates the roster has reached max_participants.
	ErrActivityFull = errors.New("activity is full")
)

// Activity is a named, capacity-bounded group with a participant roster.
// The name is the registry key and is never normalized; participant emails
// are stored lowercased in insertion order.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a copy whose roster does not alias the receiver's.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether the normalized email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// NormalizeEmail lowercases an email for storage and comparison. Nothing
// else about the address is touched.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}
