package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/signup/internal/domain"
)

func fixture() map[string]domain.Activity {
	return map[string]domain.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
	}
}

func TestSignupAppendsNormalizedEmail(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	err := reg.Signup(ctx, "Chess Club", "ALICE@MERGINGTON.EDU")
	require.NoError(t, err)

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "alice@mergington.edu"}, activity.Participants)
}

func TestSignupUnknownActivity(t *testing.T) {
	reg := New(fixture())

	err := reg.Signup(context.Background(), "Nonexistent", "x@y.com")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestSignupDuplicateIsCaseInsensitive(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	err := reg.Signup(ctx, "Chess Club", "MICHAEL@MERGINGTON.EDU")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Len(t, activity.Participants, 2)
}

func TestSignupRejectsWhenFull(t *testing.T) {
	seed := fixture()
	chess := seed["Chess Club"]
	chess.MaxParticipants = 2
	seed["Chess Club"] = chess

	reg := New(seed)
	err := reg.Signup(context.Background(), "Chess Club", "alice@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityFull)
}

func TestDuplicateCheckedBeforeCapacity(t *testing.T) {
	// A full activity still reports "already signed up" for an enrolled email.
	seed := fixture()
	chess := seed["Chess Club"]
	chess.MaxParticipants = 2
	seed["Chess Club"] = chess

	reg := New(seed)
	err := reg.Signup(context.Background(), "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)
}

func TestCapacityLoweredBelowEnrollment(t *testing.T) {
	// Lowering max_participants below the roster size never evicts anyone;
	// it only blocks further signups.
	seed := fixture()
	chess := seed["Chess Club"]
	chess.MaxParticipants = 1
	seed["Chess Club"] = chess

	reg := New(seed)
	ctx := context.Background()

	err := reg.Signup(ctx, "Chess Club", "alice@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityFull)

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Len(t, activity.Participants, 2)

	require.NoError(t, reg.Unregister(ctx, "Chess Club", "michael@mergington.edu"))
}

func TestUnregisterRemovesOnePreservingOrder(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	require.NoError(t, reg.Signup(ctx, "Chess Club", "alice@mergington.edu"))
	require.NoError(t, reg.Unregister(ctx, "Chess Club", "michael@mergington.edu"))

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"daniel@mergington.edu", "alice@mergington.edu"}, activity.Participants)
}

func TestUnregisterNormalizesEmail(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	require.NoError(t, reg.Signup(ctx, "Chess Club", "X@Y.COM"))
	require.NoError(t, reg.Unregister(ctx, "Chess Club", "x@y.com"))

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotContains(t, activity.Participants, "x@y.com")
}

func TestUnregisterAbsentParticipant(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	err := reg.Unregister(ctx, "Chess Club", "notreal@mergington.edu")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Len(t, activity.Participants, 2)
}

func TestUnregisterUnknownActivity(t *testing.T) {
	reg := New(fixture())

	err := reg.Unregister(context.Background(), "Nonexistent", "someone@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestSignupUnregisterRoundTrip(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	before, err := reg.Get(ctx, "Programming Class")
	require.NoError(t, err)

	require.NoError(t, reg.Signup(ctx, "Programming Class", "bob@mergington.edu"))
	require.NoError(t, reg.Unregister(ctx, "Programming Class", "bob@mergington.edu"))

	after, err := reg.Get(ctx, "Programming Class")
	require.NoError(t, err)
	require.Equal(t, before.Participants, after.Participants)
}

func TestListReturnsIsolatedSnapshot(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	snapshot := reg.List(ctx)
	require.Len(t, snapshot, 2)

	// Mutating the snapshot must not leak into the registry.
	chess := snapshot["Chess Club"]
	chess.Participants[0] = "tampered@mergington.edu"
	delete(snapshot, "Programming Class")

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, "michael@mergington.edu", activity.Participants[0])
	require.Len(t, reg.List(ctx), 2)
}

func TestResetRestoresFixture(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	require.NoError(t, reg.Signup(ctx, "Chess Club", "alice@mergington.edu"))
	reg.Reset(fixture())

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Len(t, activity.Participants, 2)
}

func TestConcurrentSignupsRespectCapacity(t *testing.T) {
	seed := fixture()
	chess := seed["Chess Club"]
	chess.MaxParticipants = 10
	seed["Chess Club"] = chess

	reg := New(seed)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = reg.Signup(ctx, "Chess Club", fmt.Sprintf("user%d@mergington.edu", i))
		}(i)
	}
	wg.Wait()

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Len(t, activity.Participants, 10)

	seen := make(map[string]bool, len(activity.Participants))
	for _, email := range activity.Participants {
		require.False(t, seen[email], "duplicate participant %s", email)
		seen[email] = true
	}
}

func TestConcurrentSameEmailAcceptedOnce(t *testing.T) {
	reg := New(fixture())
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := reg.Signup(ctx, "Chess Club", "alice@mergington.edu"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)

	activity, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "alice@mergington.edu"}, activity.Participants)
}
