package output

import (
	"time"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ChallengeOutput represents a challenge in JSON output.
type ChallengeOutput struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Category    string             `json:"category"`
	Icon        string             `json:"icon"`
	Color       string             `json:"color"`
	Status      string             `json:"status"`
	StartDate   string             `json:"start_date"`
	CompletedAt string             `json:"completed_at,omitempty"`
	Summary     progress.Summary   `json:"summary"`
	Entries     []model.DailyEntry `json:"entries,omitempty"`
}

// NewChallengeOutput creates a ChallengeOutput. Entries are included only
// when withEntries is set.
func NewChallengeOutput(ch *model.Challenge, withEntries bool) *ChallengeOutput {
	out := &ChallengeOutput{
		ID:          ch.ID,
		Title:       ch.Title,
		Description: ch.Description,
		Category:    ch.Category,
		Icon:        ch.Icon,
		Color:       ch.Color,
		Status:      ch.Status(),
		StartDate:   ch.StartDate.Format(time.RFC3339),
		Summary:     progress.Summarize(ch),
	}
	if ch.CompletedAt != nil {
		out.CompletedAt = ch.CompletedAt.Format(time.RFC3339)
	}
	if withEntries {
		out.Entries = ch.SortedEntries()
	}
	return out
}

// ChallengesResponse represents the challenge list output in JSON.
type ChallengesResponse struct {
	Challenges []*ChallengeOutput `json:"challenges"`
	Count      int                `json:"count"`
}

// CreateResponse represents the create command output in JSON.
type CreateResponse struct {
	Status    string           `json:"status"`
	Challenge *ChallengeOutput `json:"challenge"`
}

// CompletionOutput describes a challenge finishing.
type CompletionOutput struct {
	CompletedAt   string `json:"completed_at"`
	FutureMessage string `json:"future_message,omitempty"`
	ShareText     string `json:"share_text"`
}

// CheckInResponse represents the checkin command output in JSON.
type CheckInResponse struct {
	Status     string            `json:"status"`
	Date       string            `json:"date"`
	Replaced   bool              `json:"replaced"`
	Celebrate  bool              `json:"celebrate"`
	Milestone  string            `json:"milestone"`
	Challenge  *ChallengeOutput  `json:"challenge"`
	Completion *CompletionOutput `json:"completion,omitempty"`
	Warning    string            `json:"warning,omitempty"`
}

// NewCheckInResponse creates a CheckInResponse. saveErr, when set, is
// reported as a warning alongside the result.
func NewCheckInResponse(r *challenge.CheckInResult, saveErr error) *CheckInResponse {
	resp := &CheckInResponse{
		Status:    "recorded",
		Date:      r.Entry.Date,
		Replaced:  r.Replaced,
		Celebrate: r.Celebrate,
		Milestone: r.Milestone,
		Challenge: NewChallengeOutput(r.Challenge, false),
	}
	if r.Completion != nil {
		resp.Status = "completed"
		resp.Completion = &CompletionOutput{
			CompletedAt:   r.Completion.CompletedAt.Format(time.RFC3339),
			FutureMessage: r.Completion.FutureMessage,
			ShareText:     ShareText(r.Challenge),
		}
	}
	if saveErr != nil {
		resp.Warning = saveErr.Error()
	}
	return resp
}

// CertificateResponse represents the certificate command output in JSON.
type CertificateResponse struct {
	Name          string `json:"name"`
	Title         string `json:"title"`
	TargetDays    int    `json:"target_days"`
	TotalDays     int    `json:"total_days"`
	LongestStreak int    `json:"longest_streak"`
	AwardedOn     string `json:"awarded_on"`
	FutureMessage string `json:"future_message,omitempty"`
	ShareText     string `json:"share_text"`
}

// StatsResponse represents the stats output in JSON.
type StatsResponse struct {
	User  string         `json:"user"`
	Stats progress.Stats `json:"stats"`
}

// TemplatesResponse lists templates in JSON.
type TemplatesResponse struct {
	Templates []model.Template `json:"templates"`
}

// CategoriesResponse lists the creation choices in JSON.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Icons      []string `json:"icons"`
	Colors     []string `json:"colors"`
}

// ExportResponse is the export document. Collections are keyed by user id
// and hold the stored challenge records.
type ExportResponse struct {
	ExportedAt  string                        `json:"exported_at"`
	Namespace   string                        `json:"namespace"`
	Collections map[string][]*model.Challenge `json:"collections"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintChallenges outputs a challenge list in JSON format.
func (j *JSONFormatter) PrintChallenges(challenges []*model.Challenge) error {
	outputs := make([]*ChallengeOutput, len(challenges))
	for i, ch := range challenges {
		outputs[i] = NewChallengeOutput(ch, false)
	}
	return j.JSON(ChallengesResponse{Challenges: outputs, Count: len(outputs)})
}

// PrintChallenge outputs a single challenge with its entries.
func (j *JSONFormatter) PrintChallenge(ch *model.Challenge) error {
	return j.JSON(NewChallengeOutput(ch, true))
}

// PrintCreated outputs the create response.
func (j *JSONFormatter) PrintCreated(ch *model.Challenge) error {
	return j.JSON(CreateResponse{Status: "created", Challenge: NewChallengeOutput(ch, false)})
}

// PrintCheckIn outputs the check-in response.
func (j *JSONFormatter) PrintCheckIn(r *challenge.CheckInResult, saveErr error) error {
	return j.JSON(NewCheckInResponse(r, saveErr))
}

// PrintCertificate outputs certificate data.
func (j *JSONFormatter) PrintCertificate(ch *model.Challenge, name string) error {
	resp := CertificateResponse{
		Name:          name,
		Title:         ch.Title,
		TargetDays:    ch.TargetDays,
		TotalDays:     ch.TotalDays,
		LongestStreak: ch.LongestStreak,
		FutureMessage: ch.FutureMessage,
		ShareText:     ShareText(ch),
	}
	if ch.CompletedAt != nil {
		resp.AwardedOn = ch.CompletedAt.Format(time.RFC3339)
	}
	return j.JSON(resp)
}

// PrintStats outputs overview statistics.
func (j *JSONFormatter) PrintStats(user string, s progress.Stats) error {
	return j.JSON(StatsResponse{User: user, Stats: s})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(errMsg, category, suggestion string) error {
	resp := ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Category:   category,
		Suggestion: suggestion,
	}
	return j.JSON(resp)
}
