package errors

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// ValidationError Tests
// =============================================================================

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("title", "cannot be empty", "give your challenge a title")
	assert.Equal(t, "title", err.Field)
	assert.Equal(t, "cannot be empty", err.Message)
	assert.Equal(t, "give your challenge a title", err.Suggestion)
}

func TestValidationErrorError(t *testing.T) {
	t.Run("field_only", func(t *testing.T) {
		err := NewValidationError("title", "cannot be empty", "")
		assert.Equal(t, "title: cannot be empty", err.Error())
	})

	t.Run("with_value", func(t *testing.T) {
		err := NewValidationErrorWithValue("targetDays", "0", "must be at least 1", "")
		assert.Equal(t, "targetDays: must be at least 1: '0'", err.Error())
	})

	t.Run("no_field", func(t *testing.T) {
		err := &ValidationError{Message: "bad input"}
		assert.Equal(t, "bad input", err.Error())
	})
}

func TestIsValidationError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		assert.True(t, IsValidationError(NewValidationError("f", "m", "")))
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("create: %w", NewValidationError("f", "m", ""))
		assert.True(t, IsValidationError(wrapped))
		ve, ok := AsValidationError(wrapped)
		assert.True(t, ok)
		assert.Equal(t, "f", ve.Field)
	})

	t.Run("plain_error", func(t *testing.T) {
		assert.False(t, IsValidationError(errors.New("plain")))
	})

	t.Run("nil_error", func(t *testing.T) {
		assert.False(t, IsValidationError(nil))
	})
}

// =============================================================================
// StorageError Tests
// =============================================================================

func TestStorageError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewStorageError("save", "mitraa_challenges_u1", cause)

	assert.Equal(t, "storage save failed for mitraa_challenges_u1: quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStorageError(fmt.Errorf("wrapped: %w", err)))

	se, ok := AsStorageError(err)
	assert.True(t, ok)
	assert.Equal(t, "save", se.Op)
}

func TestStorageErrorWithoutKey(t *testing.T) {
	err := NewStorageError("list", "", errors.New("boom"))
	assert.Equal(t, "storage list failed: boom", err.Error())
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewParseError("mitraa_challenges_u1", cause)
	assert.Contains(t, err.Error(), "mitraa_challenges_u1")
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsParseError(err))
}

// =============================================================================
// Classification Tests
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"validation", NewValidationError("f", "m", ""), CategoryUser},
		{"not_found", fmt.Errorf("get: %w", ErrChallengeNotFound), CategoryUser},
		{"invalid_date", ErrInvalidDate, CategoryUser},
		{"storage", NewStorageError("save", "k", errors.New("x")), CategorySystem},
		{"enospc", fmt.Errorf("write: %w", syscall.ENOSPC), CategorySystem},
		{"lock_held", ErrLockHeld, CategorySystem},
		{"disk_full", fmt.Errorf("open: %w", ErrDiskFull), CategorySystem},
		{"parse", NewParseError("k", errors.New("x")), CategoryInternal},
		{"plain", errors.New("something"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "internal", CategoryInternal.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestFormatByCategory(t *testing.T) {
	t.Run("user_with_suggestion", func(t *testing.T) {
		msg := FormatByCategory(ErrChallengeNotFound)
		assert.Contains(t, msg, "challenge not found")
		assert.Contains(t, msg, "Try: ")
		assert.Contains(t, msg, "mitraa list")
	})

	t.Run("system", func(t *testing.T) {
		msg := FormatByCategory(NewStorageError("save", "k", errors.New("disk")))
		assert.Contains(t, msg, "System error: ")
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", FormatByCategory(nil))
	})
}

// =============================================================================
// Suggestion Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	t.Run("sentinel", func(t *testing.T) {
		assert.Contains(t, GetSuggestion(fmt.Errorf("x: %w", ErrInvalidMood)), "1 (very low)")
	})

	t.Run("validation_suggestion", func(t *testing.T) {
		err := NewValidationError("title", "cannot be empty", "Provide a title")
		assert.Equal(t, "Provide a title", GetSuggestion(err))
	})

	t.Run("storage_error", func(t *testing.T) {
		err := NewStorageError("save", "k", errors.New("x"))
		assert.Contains(t, GetSuggestion(err), "kept in memory")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, "", GetSuggestion(errors.New("nope")))
		assert.Equal(t, "", GetSuggestion(nil))
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))
	err := Wrap(ErrChallengeNotFound, "checkin")
	assert.Equal(t, "checkin: challenge not found", err.Error())
	assert.True(t, Is(err, ErrChallengeNotFound))

	err = Wrapf(ErrInvalidDate, "parse %q", "tomorrowish")
	assert.True(t, Is(err, ErrInvalidDate))
	assert.Nil(t, Wrapf(nil, "x"))
}

func TestNew(t *testing.T) {
	err := New("data lock busy")
	assert.EqualError(t, err, "data lock busy")
	assert.True(t, Is(Wrap(err, "open"), err))
	assert.False(t, Is(New("data lock busy"), err))
}
