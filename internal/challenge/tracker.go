package challenge

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
)

// Repository loads and saves a user's whole challenge collection.
type Repository interface {
	Load(ctx context.Context, userID string) (*model.Collection, error)
	Save(ctx context.Context, c *model.Collection) error
}

// Filter selects challenges by lifecycle state.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Match reports whether ch passes the filter.
func (f Filter) Match(ch *model.Challenge) bool {
	switch f {
	case FilterActive:
		return ch.IsActive && !ch.IsCompleted
	case FilterCompleted:
		return ch.IsCompleted
	default:
		return true
	}
}

// CheckInResult is what a check-in produced.
type CheckInResult struct {
	Challenge  *model.Challenge `json:"challenge"`
	Entry      model.DailyEntry `json:"entry"`
	Replaced   bool             `json:"replaced"`
	Completion *CompletionEvent `json:"completion,omitempty"`
	Celebrate  bool             `json:"celebrate"`
	Milestone  string           `json:"milestone"`
	Summary    progress.Summary `json:"summary"`
}

// Tracker is the service the CLI and dashboard talk to. Every
// load-mutate-save sequence for a user runs under that user's lock, since
// saves overwrite the whole collection.
type Tracker struct {
	repo  Repository
	ctrl  *Controller
	locks *userLocks
}

// NewTracker creates a tracker.
func NewTracker(repo Repository, ctrl *Controller) *Tracker {
	if ctrl == nil {
		ctrl = NewController(Options{})
	}
	return &Tracker{repo: repo, ctrl: ctrl, locks: newUserLocks()}
}

// Controller returns the lifecycle controller.
func (t *Tracker) Controller() *Controller {
	return t.ctrl
}

// Create validates spec, appends the new challenge to the user's collection
// and saves it. On a save failure the created challenge is returned along
// with the *errors.StorageError.
func (t *Tracker) Create(ctx context.Context, userID string, spec Spec) (*model.Challenge, error) {
	ch, err := t.ctrl.Create(spec)
	if err != nil {
		return nil, err
	}

	unlock := t.locks.lock(userID)
	defer unlock()

	col, err := t.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	col.Challenges = append(col.Challenges, ch)

	log := logging.ForUser(userID).With(logging.KeyOperation, "create", logging.KeyChallengeID, ch.ID)
	if err := t.repo.Save(ctx, col); err != nil {
		log.Warn("challenge created but not saved", logging.KeyError, err)
		return ch, err
	}
	log.Info("challenge created", logging.KeyCount, len(col.Challenges))
	return ch, nil
}

// CheckIn records an entry for the challenge matching challengeID (a full id
// or unique prefix) on date's calendar day, then saves. When the save fails
// the result is still returned, completion event included, together with
// the *errors.StorageError.
func (t *Tracker) CheckIn(ctx context.Context, userID, challengeID string, date time.Time, in EntryInput) (*CheckInResult, error) {
	unlock := t.locks.lock(userID)
	defer unlock()

	col, err := t.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, err := lookup(col, challengeID)
	if err != nil {
		return nil, err
	}
	day := model.FormatDay(date)
	_, replaced := current.Entry(day)

	updated, event, err := t.ctrl.RecordDailyEntry(current, date, in)
	if err != nil {
		return nil, err
	}
	col.Replace(updated)

	entry, _ := updated.Entry(day)
	result := &CheckInResult{
		Challenge:  updated,
		Entry:      entry,
		Replaced:   replaced,
		Completion: event,
		Celebrate:  entry.Completed && model.IsCelebration(updated.CurrentStreak),
		Milestone:  model.MilestoneFor(updated.CurrentStreak).Title,
		Summary:    progress.Summarize(updated),
	}

	log := logging.ForUser(userID).With(
		logging.KeyOperation, "checkin",
		logging.KeyChallengeID, updated.ID,
		logging.KeyDate, day,
	)
	if err := t.repo.Save(ctx, col); err != nil {
		log.Warn("check-in recorded but not saved", logging.KeyError, err)
		return result, err
	}

	log.Info("check-in recorded",
		logging.KeyStreak, updated.CurrentStreak,
		logging.KeyTotalDays, updated.TotalDays,
		"completed", event != nil)
	return result, nil
}

// List returns the user's challenges that pass filter, with derived
// counters refreshed.
func (t *Tracker) List(ctx context.Context, userID string, filter Filter) ([]*model.Challenge, error) {
	col, err := t.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Challenge, 0, len(col.Challenges))
	for _, ch := range col.Challenges {
		Recompute(ch)
		if filter.Match(ch) {
			out = append(out, ch)
		}
	}
	return out, nil
}

// Get returns one challenge by full id or unique id prefix.
func (t *Tracker) Get(ctx context.Context, userID, challengeID string) (*model.Challenge, error) {
	col, err := t.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ch, err := lookup(col, challengeID)
	if err != nil {
		return nil, err
	}
	Recompute(ch)
	return ch, nil
}

// Stats returns the overview across all of the user's challenges.
func (t *Tracker) Stats(ctx context.Context, userID string) (progress.Stats, error) {
	challenges, err := t.List(ctx, userID, FilterAll)
	if err != nil {
		return progress.Stats{}, err
	}
	return progress.Overview(challenges), nil
}

// lookup resolves an exact id first, then a unique prefix.
func lookup(col *model.Collection, id string) (*model.Challenge, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationError("challenge", "id cannot be empty", "Use 'mitraa list' to see your challenges and their IDs.")
	}
	if ch := col.Find(id); ch != nil {
		return ch, nil
	}

	var match *model.Challenge
	for _, ch := range col.Challenges {
		if !strings.HasPrefix(ch.ID, id) {
			continue
		}
		if match != nil {
			return nil, errors.NewValidationErrorWithValue("challenge", id,
				"id prefix matches more than one challenge",
				"Type more characters of the id")
		}
		match = ch
	}
	if match == nil {
		return nil, errors.Wrapf(errors.ErrChallengeNotFound, "no challenge %q", id)
	}
	return match, nil
}

// userLocks is a set of mutexes keyed by user id. Entries are dropped once
// no goroutine holds or waits for them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

// lock blocks until userID's lock is held and returns its release func.
func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

// size reports how many user locks are live.
func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
