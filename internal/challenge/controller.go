// Package challenge implements the challenge lifecycle: creation, daily
// check-ins and the one-way transition to completed. Controller is pure and
// works on copies; Tracker adds loading, saving and per-user serialization.
package challenge

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
	"github.com/manav03panchal/mitraa/internal/validate"
)

// Spec describes a challenge to create.
type Spec struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	TargetDays    int    `json:"targetDays"`
	Color         string `json:"color,omitempty"`
	Icon          string `json:"icon,omitempty"`
	FutureMessage string `json:"futureMessage,omitempty"`
}

// SpecFromTemplate prefills a Spec from a template.
func SpecFromTemplate(t model.Template) Spec {
	return Spec{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		TargetDays:  t.TargetDays,
		Color:       t.Color,
		Icon:        t.Icon,
	}
}

// EntryInput holds the fields of one daily check-in.
type EntryInput struct {
	Completed bool
	Note      string
	Photo     string
	Mood      *int
}

// CompletionEvent is emitted exactly once, by the check-in that first
// brings a challenge's completed days up to its target.
type CompletionEvent struct {
	ChallengeID   string           `json:"challengeId"`
	Title         string           `json:"title"`
	TargetDays    int              `json:"targetDays"`
	CompletedAt   time.Time        `json:"completedAt"`
	FutureMessage string           `json:"futureMessage,omitempty"`
	Challenge     *model.Challenge `json:"challenge"`
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	// Now returns the current time. Default: time.Now.
	Now func() time.Time
	// NewID returns a fresh challenge id. Default: UUID v7.
	NewID func() (string, error)
	// MaxTargetDays caps TargetDays. Default: model.MaxTargetDays.
	MaxTargetDays int
	// MaxNoteLength caps notes and future messages. Default: validate.MaxNoteLength.
	MaxNoteLength int
}

// Controller applies lifecycle rules to challenges.
type Controller struct {
	now           func() time.Time
	newID         func() (string, error)
	maxTargetDays int
	maxNoteLength int
}

// NewController creates a controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		now:           opts.Now,
		newID:         opts.NewID,
		maxTargetDays: opts.MaxTargetDays,
		maxNoteLength: opts.MaxNoteLength,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = newUUID
	}
	if c.maxTargetDays <= 0 {
		c.maxTargetDays = model.MaxTargetDays
	}
	if c.maxNoteLength <= 0 {
		c.maxNoteLength = validate.MaxNoteLength
	}
	return c
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Create validates spec and returns a new active challenge. Nothing is
// returned on validation failure.
func (c *Controller) Create(spec Spec) (*model.Challenge, error) {
	spec.Title = validate.SanitizeTitle(spec.Title)
	spec.Description = validate.SanitizeNote(spec.Description)
	spec.Category = validate.SanitizeTitle(spec.Category)
	spec.Color = strings.TrimSpace(spec.Color)
	spec.Icon = strings.TrimSpace(spec.Icon)
	spec.FutureMessage = validate.SanitizeNote(spec.FutureMessage)

	checks := []error{
		validate.Title(spec.Title),
		validate.Description(spec.Description),
		validate.Category(spec.Category),
		validate.TargetDays(spec.TargetDays, c.maxTargetDays),
		validate.HexColor(spec.Color),
		validate.Icon(spec.Icon),
		validate.MaxLength("futureMessage", spec.FutureMessage, c.maxNoteLength),
	}
	for _, err := range checks {
		if err != nil {
			return nil, err
		}
	}

	if spec.Color == "" {
		spec.Color = model.DefaultColor
	}
	if spec.Icon == "" {
		spec.Icon = model.DefaultIcon
	}

	id, err := c.newID()
	if err != nil {
		return nil, errors.Wrap(err, "generate challenge id")
	}

	return &model.Challenge{
		ID:            id,
		Title:         spec.Title,
		Description:   spec.Description,
		Category:      spec.Category,
		TargetDays:    spec.TargetDays,
		Color:         spec.Color,
		Icon:          spec.Icon,
		StartDate:     c.now(),
		IsActive:      true,
		DailyEntries:  []model.DailyEntry{},
		FutureMessage: spec.FutureMessage,
	}, nil
}

// RecordDailyEntry records in for the calendar day of date and returns the
// updated copy of ch. An existing entry for that day is replaced. The
// returned event is non-nil only on the first transition to completed;
// entries on an already completed challenge are accepted as corrections
// and never uncomplete it. ch itself is never modified.
func (c *Controller) RecordDailyEntry(ch *model.Challenge, date time.Time, in EntryInput) (*model.Challenge, *CompletionEvent, error) {
	if ch == nil {
		return nil, nil, errors.ErrChallengeNotFound
	}

	in.Note = validate.SanitizeNote(in.Note)
	in.Photo = strings.TrimSpace(in.Photo)
	checks := []error{
		validate.MaxLength("note", in.Note, c.maxNoteLength),
		validate.Photo(in.Photo),
		validate.Mood(in.Mood),
	}
	for _, err := range checks {
		if err != nil {
			return nil, nil, err
		}
	}

	day := model.StartOfDay(date)
	if day.After(model.StartOfDay(c.now())) {
		return nil, nil, errors.NewValidationErrorWithValue("date", model.FormatDay(day),
			"cannot check in for a future day",
			"Check in for today or an earlier day")
	}

	entry := model.DailyEntry{
		Date:      model.FormatDay(day),
		Completed: in.Completed,
		Note:      in.Note,
		Photo:     in.Photo,
	}
	if in.Mood != nil {
		mood := *in.Mood
		entry.Mood = &mood
	}

	updated := ch.Clone()
	if i := updated.EntryIndex(entry.Date); i >= 0 {
		updated.DailyEntries[i] = entry
	} else {
		updated.DailyEntries = append(updated.DailyEntries, entry)
		// backfilled days land in date order
		updated.DailyEntries = updated.SortedEntries()
	}
	Recompute(updated)

	if ch.IsCompleted || updated.TotalDays < updated.TargetDays {
		return updated, nil, nil
	}

	at := c.now()
	updated.IsCompleted = true
	updated.IsActive = false
	updated.CompletedAt = &at

	return updated, &CompletionEvent{
		ChallengeID:   updated.ID,
		Title:         updated.Title,
		TargetDays:    updated.TargetDays,
		CompletedAt:   at,
		FutureMessage: updated.FutureMessage,
		Challenge:     updated.Clone(),
	}, nil
}

// Recompute refreshes the derived counters on ch from its entries.
// Lifecycle flags are left alone.
func Recompute(ch *model.Challenge) {
	ch.CurrentStreak = progress.CurrentStreak(ch.DailyEntries)
	ch.LongestStreak = progress.LongestStreak(ch.DailyEntries)
	ch.TotalDays = progress.TotalDays(ch.DailyEntries)
}
