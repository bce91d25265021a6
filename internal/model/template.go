package model

import "strings"

// Creation defaults.
const (
	DefaultColor      = "#4a90e2"
	DefaultIcon       = "Target"
	DefaultTargetDays = 21
	MaxTargetDays     = 365
)

// Template is a predefined challenge a user can start from.
type Template struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	TargetDays  int    `json:"suggestedDays"`
	Tips        string `json:"tips"`
}

// Templates are the built-in challenge templates.
var Templates = []Template{
	{
		Title:       "Better Sleep Schedule",
		Description: "Improve sleep quality by maintaining consistent bedtime",
		Category:    "Sleep & Rest",
		Icon:        "Moon",
		Color:       "#6366f1",
		TargetDays:  21,
		Tips:        "Aim for 7-9 hours of sleep, avoid screens 1 hour before bed",
	},
	{
		Title:       "Digital Detox",
		Description: "Reduce screen time and social media usage",
		Category:    "Digital Wellness",
		Icon:        "Smartphone",
		Color:       "#10b981",
		TargetDays:  14,
		Tips:        "Set specific times for phone use, try phone-free zones",
	},
	{
		Title:       "Daily Exercise",
		Description: "Build a consistent exercise routine",
		Category:    "Physical Health",
		Icon:        "Dumbbell",
		Color:       "#f59e0b",
		TargetDays:  30,
		Tips:        "Start with 15-30 minutes daily, find activities you enjoy",
	},
	{
		Title:       "Mindful Reading",
		Description: "Read for personal growth and relaxation",
		Category:    "Mental Growth",
		Icon:        "Book",
		Color:       "#8b5cf6",
		TargetDays:  28,
		Tips:        "Even 15 minutes daily makes a difference",
	},
	{
		Title:       "Gratitude Practice",
		Description: "Daily gratitude journaling for mental wellness",
		Category:    "Mindfulness",
		Icon:        "Heart",
		Color:       "#ef4444",
		TargetDays:  21,
		Tips:        "Write 3 things you're grateful for each day",
	},
	{
		Title:       "Hydration Goal",
		Description: "Drink adequate water throughout the day",
		Category:    "Health",
		Icon:        "Coffee",
		Color:       "#06b6d4",
		TargetDays:  14,
		Tips:        "Aim for 8 glasses of water daily",
	},
}

// FindTemplate looks a template up by title or slug ("digital-detox"),
// ignoring case.
func FindTemplate(name string) (Template, bool) {
	want := Slug(name)
	for _, t := range Templates {
		if Slug(t.Title) == want {
			return t, true
		}
	}
	return Template{}, false
}

// Slug lowercases s and joins its words with hyphens.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Categories are the categories offered for custom challenges.
var Categories = []string{
	"Mental Health", "Physical Health", "Sleep & Rest", "Digital Wellness",
	"Mindfulness", "Productivity", "Social Connection", "Creative Expression",
	"Learning", "Nutrition", "Self-Care", "Environmental",
}

// Icons maps icon names to the glyph shown in the terminal.
var Icons = map[string]string{
	"Target":     "🎯",
	"Moon":       "🌙",
	"Smartphone": "📱",
	"Dumbbell":   "🏋",
	"Book":       "📖",
	"Heart":      "❤",
	"Coffee":     "☕",
	"Smile":      "😊",
	"TreePine":   "🌲",
	"Utensils":   "🍴",
	"Music":      "🎵",
	"Palette":    "🎨",
}

// IconNames lists icon names in display order.
var IconNames = []string{
	"Target", "Moon", "Smartphone", "Dumbbell", "Book", "Heart",
	"Coffee", "Smile", "TreePine", "Utensils", "Music", "Palette",
}

// Colors is the suggested colour palette.
var Colors = []string{
	"#4a90e2", "#6dd5a1", "#ff9f43", "#8b5cf6", "#ef4444",
	"#10b981", "#f59e0b", "#6366f1", "#06b6d4", "#ec4899",
}

// IconGlyph returns the glyph for an icon name, falling back to the default icon.
func IconGlyph(name string) string {
	if g, ok := Icons[name]; ok {
		return g
	}
	return Icons[DefaultIcon]
}

// Mood scale bounds.
const (
	MoodMin = 1
	MoodMax = 5
)

var moodLabels = map[int]string{
	1: "Very Low",
	2: "Low",
	3: "Neutral",
	4: "Good",
	5: "Excellent",
}

// MoodLabel returns the label for a mood value, or "" when out of range.
func MoodLabel(mood int) string {
	return moodLabels[mood]
}
