package model

// Milestone is the rank shown next to a streak.
type Milestone struct {
	Title string
	Color string
	Min   int
}

// Milestones are ordered from highest to lowest threshold.
var Milestones = []Milestone{
	{Title: "Habit Master", Color: "#F59E0B", Min: 21},
	{Title: "Consistency Champion", Color: "#8B5CF6", Min: 14},
	{Title: "Week Warrior", Color: "#3B82F6", Min: 7},
	{Title: "Momentum Builder", Color: "#10B981", Min: 3},
	{Title: "Getting Started", Color: "#6B7280", Min: 0},
}

// MilestoneFor returns the milestone reached by a streak.
func MilestoneFor(streak int) Milestone {
	for _, m := range Milestones {
		if streak >= m.Min {
			return m
		}
	}
	return Milestones[len(Milestones)-1]
}

// Badge is an achievement unlocked by a streak length.
type Badge struct {
	Name     string `json:"name"`
	Required int    `json:"required"`
	Earned   bool   `json:"earned"`
}

var badgeThresholds = []Badge{
	{Name: "First Step", Required: 1},
	{Name: "3-Day Starter", Required: 3},
	{Name: "Week Warrior", Required: 7},
	{Name: "Two Week Champion", Required: 14},
	{Name: "Habit Master", Required: 21},
}

// Badges returns every badge with Earned set against the given streak.
// Callers pass the longest streak so a broken run does not revoke badges.
func Badges(streak int) []Badge {
	out := make([]Badge, len(badgeThresholds))
	for i, b := range badgeThresholds {
		b.Earned = streak >= b.Required
		out[i] = b
	}
	return out
}

// IsCelebration reports whether reaching streak deserves a celebration:
// the first day and every full week.
func IsCelebration(streak int) bool {
	return streak == 1 || (streak > 0 && streak%7 == 0)
}
