package challenge

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/storage"
)

func setupTracker(t *testing.T, now time.Time) (*Tracker, *storage.ChallengeRepo, *testClock) {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := storage.NewChallengeRepo(db, "")
	ctrl, clock := newTestController(now)
	return NewTracker(repo, ctrl), repo, clock
}

// flakyRepo wraps a repository and fails saves on demand.
type flakyRepo struct {
	Repository
	failSave bool
	failLoad bool
	saves    int
}

func (r *flakyRepo) Load(ctx context.Context, userID string) (*model.Collection, error) {
	if r.failLoad {
		return nil, errors.NewStorageError("load", model.CollectionKey("", userID), fmt.Errorf("connection reset"))
	}
	return r.Repository.Load(ctx, userID)
}

func (r *flakyRepo) Save(ctx context.Context, c *model.Collection) error {
	r.saves++
	if r.failSave {
		return errors.NewStorageError("save", c.GetKey(), fmt.Errorf("quota exceeded"))
	}
	return r.Repository.Save(ctx, c)
}

// =============================================================================
// Create / List / Get Tests
// =============================================================================

func TestTrackerCreateAndList(t *testing.T) {
	tracker, repo, _ := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	a, err := tracker.Create(ctx, "u1", validSpec())
	require.NoError(t, err)
	b, err := tracker.Create(ctx, "u1", validSpec())
	require.NoError(t, err)

	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, a.ID, stored[0].ID)
	assert.Equal(t, b.ID, stored[1].ID)

	all, err := tracker.List(ctx, "u1", FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := tracker.List(ctx, "someone-else", FilterAll)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTrackerCreateValidationSavesNothing(t *testing.T) {
	tracker, repo, _ := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	spec := validSpec()
	spec.TargetDays = 0
	ch, err := tracker.Create(ctx, "u1", spec)
	assert.Nil(t, ch)
	assert.True(t, errors.IsValidationError(err))

	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestTrackerGet(t *testing.T) {
	_, repo, _ := setupTracker(t, day("2025-01-01"))
	ids := []string{"0192a1b2-aaaa", "0192a1b2-bbbb", "0193ffff-cccc"}
	next := 0
	ctrl := NewController(Options{
		Now: func() time.Time { return day("2025-01-01") },
		NewID: func() (string, error) {
			next++
			return ids[next-1], nil
		},
	})
	tracker := NewTracker(repo, ctrl)
	ctx := context.Background()

	for range ids {
		_, err := tracker.Create(ctx, "u1", validSpec())
		require.NoError(t, err)
	}

	t.Run("exact_id", func(t *testing.T) {
		ch, err := tracker.Get(ctx, "u1", "0192a1b2-bbbb")
		require.NoError(t, err)
		assert.Equal(t, "0192a1b2-bbbb", ch.ID)
	})

	t.Run("unique_prefix", func(t *testing.T) {
		ch, err := tracker.Get(ctx, "u1", "0193")
		require.NoError(t, err)
		assert.Equal(t, "0193ffff-cccc", ch.ID)
	})

	t.Run("ambiguous_prefix", func(t *testing.T) {
		_, err := tracker.Get(ctx, "u1", "0192")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := tracker.Get(ctx, "u1", "nope")
		assert.ErrorIs(t, err, errors.ErrChallengeNotFound)
	})

	t.Run("empty_id", func(t *testing.T) {
		_, err := tracker.Get(ctx, "u1", " ")
		assert.True(t, errors.IsValidationError(err))
	})
}

// =============================================================================
// CheckIn Tests
// =============================================================================

func TestTrackerCheckInPersists(t *testing.T) {
	tracker, repo, clock := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	ch, err := tracker.Create(ctx, "u1", validSpec())
	require.NoError(t, err)

	res, err := tracker.CheckIn(ctx, "u1", ch.ID, day("2025-01-01"), EntryInput{Completed: true, Note: "20 minute walk", Mood: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Challenge.CurrentStreak)
	assert.True(t, res.Celebrate)
	assert.False(t, res.Replaced)
	assert.Nil(t, res.Completion)
	assert.Equal(t, "Getting Started", res.Milestone)
	assert.Equal(t, "2025-01-01", res.Entry.Date)
	assert.Equal(t, float64(33), res.Summary.Percentage)

	clock.t = day("2025-01-02")
	res, err = tracker.CheckIn(ctx, "u1", ch.ID, day("2025-01-02"), EntryInput{Completed: true})
	require.NoError(t, err)
	assert.False(t, res.Celebrate)

	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].DailyEntries, 2)
	assert.Equal(t, 2, stored[0].CurrentStreak)
	assert.Equal(t, "20 minute walk", stored[0].DailyEntries[0].Note)
}

func TestTrackerCheckInCompletion(t *testing.T) {
	tracker, repo, clock := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	ch, err := tracker.Create(ctx, "u1", validSpec())
	require.NoError(t, err)

	var completions int
	for _, d := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		clock.t = day(d)
		res, err := tracker.CheckIn(ctx, "u1", ch.ID, day(d), EntryInput{Completed: true})
		require.NoError(t, err)
		if res.Completion != nil {
			completions++
			assert.Equal(t, "2025-01-03", d)
		}
	}
	assert.Equal(t, 1, completions)

	// a later correction is saved but does not complete again
	clock.t = day("2025-01-05")
	res, err := tracker.CheckIn(ctx, "u1", ch.ID, day("2025-01-01"), EntryInput{Completed: true, Note: "fixed"})
	require.NoError(t, err)
	assert.Nil(t, res.Completion)
	assert.True(t, res.Replaced)

	completed, err := tracker.List(ctx, "u1", FilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.NotNil(t, completed[0].CompletedAt)
	assert.WithinDuration(t, day("2025-01-03"), *completed[0].CompletedAt, 0, "stored completion time keeps its instant")

	active, err := tracker.List(ctx, "u1", FilterActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "fixed", stored[0].DailyEntries[0].Note)
}

func TestTrackerCheckInSaveFailureKeepsCompletion(t *testing.T) {
	tracker, repo, _ := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	spec := validSpec()
	spec.TargetDays = 1
	spec.FutureMessage = "Proud of you"
	ch, err := tracker.Create(ctx, "u1", spec)
	require.NoError(t, err)

	flaky := &flakyRepo{Repository: repo, failSave: true}
	failing := NewTracker(flaky, tracker.Controller())

	res, err := failing.CheckIn(ctx, "u1", ch.ID, day("2025-01-01"), EntryInput{Completed: true})
	require.Error(t, err)
	assert.True(t, errors.IsStorageError(err))

	require.NotNil(t, res)
	require.NotNil(t, res.Completion)
	assert.Equal(t, "Proud of you", res.Completion.FutureMessage)
	assert.True(t, res.Challenge.IsCompleted)

	// nothing reached the store
	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, stored[0].IsCompleted)
}

func TestTrackerCreateSaveFailureReturnsChallenge(t *testing.T) {
	_, repo, _ := setupTracker(t, day("2025-01-01"))
	ctrl, _ := newTestController(day("2025-01-01"))
	tracker := NewTracker(&flakyRepo{Repository: repo, failSave: true}, ctrl)

	ch, err := tracker.Create(context.Background(), "u1", validSpec())
	assert.True(t, errors.IsStorageError(err))
	require.NotNil(t, ch)
	assert.Equal(t, "challenge-001", ch.ID)
}

func TestTrackerLoadFailureDoesNotSave(t *testing.T) {
	_, repo, _ := setupTracker(t, day("2025-01-01"))
	ctrl, _ := newTestController(day("2025-01-01"))
	flaky := &flakyRepo{Repository: repo, failLoad: true}
	tracker := NewTracker(flaky, ctrl)
	ctx := context.Background()

	_, err := tracker.Create(ctx, "u1", validSpec())
	assert.True(t, errors.IsStorageError(err))

	_, err = tracker.CheckIn(ctx, "u1", "x", day("2025-01-01"), EntryInput{Completed: true})
	assert.True(t, errors.IsStorageError(err))

	_, err = tracker.Stats(ctx, "u1")
	assert.True(t, errors.IsStorageError(err))

	assert.Zero(t, flaky.saves)
}

func TestTrackerCheckInValidationSavesNothing(t *testing.T) {
	tracker, repo, _ := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()
	ch, err := tracker.Create(ctx, "u1", validSpec())
	require.NoError(t, err)

	res, err := tracker.CheckIn(ctx, "u1", ch.ID, day("2025-01-01"), EntryInput{Completed: true, Mood: intPtr(9)})
	assert.Nil(t, res)
	assert.True(t, errors.IsValidationError(err))

	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored[0].DailyEntries)
}

func TestTrackerWeeklyCelebration(t *testing.T) {
	start := day("2025-01-01")
	tracker, _, clock := setupTracker(t, start)
	ctx := context.Background()

	spec := validSpec()
	spec.TargetDays = 21
	ch, err := tracker.Create(ctx, "u1", spec)
	require.NoError(t, err)

	var celebrated []int
	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		clock.t = d
		res, err := tracker.CheckIn(ctx, "u1", ch.ID, d, EntryInput{Completed: true})
		require.NoError(t, err)
		if res.Celebrate {
			celebrated = append(celebrated, res.Challenge.CurrentStreak)
		}
	}
	assert.Equal(t, []int{1, 7, 14}, celebrated)
}

// =============================================================================
// Serialization Tests
// =============================================================================

func TestTrackerConcurrentCheckInsAreSerialized(t *testing.T) {
	start := day("2025-01-01")
	tracker, repo, _ := setupTracker(t, start.AddDate(0, 0, 60))
	ctx := context.Background()

	spec := validSpec()
	spec.TargetDays = 100
	ch, err := tracker.Create(ctx, "u1", spec)
	require.NoError(t, err)

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tracker.CheckIn(ctx, "u1", ch.ID, start.AddDate(0, 0, i), EntryInput{Completed: true})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := repo.LoadAll(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored[0].DailyEntries, n, "no check-in may be lost to a concurrent overwrite")
	assert.Equal(t, n, stored[0].TotalDays)
	assert.Equal(t, 0, tracker.locks.size())
}

func TestTrackerConcurrentCreatesAcrossUsers(t *testing.T) {
	tracker, repo, _ := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, user := range []string{"a", "b", "c"} {
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func(user string) {
				defer wg.Done()
				_, err := tracker.Create(ctx, user, validSpec())
				assert.NoError(t, err)
			}(user)
		}
	}
	wg.Wait()

	for _, user := range []string{"a", "b", "c"} {
		stored, err := repo.LoadAll(ctx, user)
		require.NoError(t, err)
		assert.Len(t, stored, 5, user)
	}
}

func TestTrackerStats(t *testing.T) {
	tracker, _, _ := setupTracker(t, day("2025-01-01"))
	ctx := context.Background()

	one := validSpec()
	one.TargetDays = 1
	done, err := tracker.Create(ctx, "u1", one)
	require.NoError(t, err)
	_, err = tracker.Create(ctx, "u1", validSpec())
	require.NoError(t, err)

	_, err = tracker.CheckIn(ctx, "u1", done.ID, day("2025-01-01"), EntryInput{Completed: true})
	require.NoError(t, err)

	stats, err := tracker.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Challenges)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.TotalStreaks)
	assert.Equal(t, 1, stats.TotalDays)
	assert.Equal(t, float64(50), stats.CompletionRate)
}

func TestFilterMatch(t *testing.T) {
	active := &model.Challenge{IsActive: true}
	completed := &model.Challenge{IsCompleted: true}

	assert.True(t, FilterAll.Match(active))
	assert.True(t, FilterAll.Match(completed))
	assert.True(t, FilterActive.Match(active))
	assert.False(t, FilterActive.Match(completed))
	assert.True(t, FilterCompleted.Match(completed))
	assert.False(t, FilterCompleted.Match(active))
}
