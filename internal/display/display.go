// Package display derives the values the screens render from the raw
// program list and profile: percentages, tracker fill, status colours and the
// dashboard/tracker/schedule view models. Every surface (HTTP, MCP, TUI)
// renders from these so they agree.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/claude/gymmate/internal/models"
)

// Palette of the app.
const (
	DarkBlue       = "#1A2C50"
	LightBlue      = "#2D4B85"
	BackgroundGray = "#E5E5E5"
	TextWhite      = "#FFFFFF"
	CustomGreen    = "#00C853"
	DangerRed      = "#FF0000"
	GenderMan      = "#D32F2F"
	GenderWoman    = "#E91E63"
	Gray           = "#888888"
)

// minFill keeps an empty tracker bar visible.
const minFill = 0.01

// Percent returns progress as a whole percentage, truncated (0.655 -> 65).
func Percent(progress float64) int {
	// The epsilon absorbs float error such as 0.29*100 = 28.999999999999996.
	return int(math.Floor(progress*100 + 1e-9))
}

// Fill returns the fraction of the tracker bar to paint.
func Fill(progress float64) float64 {
	if progress == 0 {
		return minFill
	}
	return progress
}

// Active reports whether any work has been logged for the program.
func Active(progress float64) bool {
	return progress > 0
}

// StatusColor is the colour of the quick-schedule dot.
func StatusColor(progress float64) string {
	if Active(progress) {
		return CustomGreen
	}
	return Gray
}

// GenderColor is the highlight of the selected gender button.
func GenderColor(g models.Gender) string {
	switch g {
	case models.GenderMan:
		return GenderMan
	case models.GenderWoman:
		return GenderWoman
	default:
		return Gray
	}
}

// Label is the "<day> - <muscle>" line used by the tracker and custom program list.
func Label(p models.Program) string {
	return p.Day + " - " + p.Muscle
}

// QuickLabel is the "<day>: <muscle>" line used on the dashboard.
func QuickLabel(p models.Program) string {
	return p.Day + ": " + p.Muscle
}

// TrackerRow is one bar of the weekly tracker.
type TrackerRow struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Fill    float64 `json:"fill"`
	Percent string  `json:"percent,omitempty"`
}

// Tracker builds the weekly tracker rows. Inactive rows carry no percent label.
func Tracker(programs []models.Program) []TrackerRow {
	rows := make([]TrackerRow, 0, len(programs))
	for _, p := range programs {
		row := TrackerRow{ID: p.ID, Label: Label(p), Fill: Fill(p.Progress)}
		if Active(p.Progress) {
			row.Percent = fmt.Sprintf("%d%%", Percent(p.Progress))
		}
		rows = append(rows, row)
	}
	return rows
}

// ScheduleRow is one card of the weekly schedule.
type ScheduleRow struct {
	ID     int    `json:"id"`
	Day    string `json:"day"`
	Muscle string `json:"muscle"`
}

// Schedule builds the weekly schedule cards.
func Schedule(programs []models.Program) []ScheduleRow {
	rows := make([]ScheduleRow, 0, len(programs))
	for _, p := range programs {
		rows = append(rows, ScheduleRow{ID: p.ID, Day: p.Day, Muscle: p.Muscle})
	}
	return rows
}

// QuickItem is one entry of the dashboard's quick schedule.
type QuickItem struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

// TodayCard is the dashboard card for the current weekday.
type TodayCard struct {
	Title     string `json:"title"`
	ProgramID int    `json:"program_id,omitempty"`
}

// DashboardView is everything the home screen shows.
type DashboardView struct {
	Welcome       string      `json:"welcome"`
	Tagline       string      `json:"tagline"`
	Today         TodayCard   `json:"today"`
	QuickSchedule []QuickItem `json:"quick_schedule"`
}

// Dashboard builds the home screen for the given moment.
func Dashboard(p models.Profile, programs []models.Program, now time.Time) DashboardView {
	v := DashboardView{
		Welcome:       "Welcome " + p.Name,
		Tagline:       "Ready to Upgrade Yourself?",
		Today:         Today(programs, now),
		QuickSchedule: make([]QuickItem, 0, len(programs)),
	}
	for _, prog := range programs {
		v.QuickSchedule = append(v.QuickSchedule, QuickItem{
			ID:     prog.ID,
			Label:  QuickLabel(prog),
			Color:  StatusColor(prog.Progress),
			Active: Active(prog.Progress),
		})
	}
	return v
}

// Today picks the first program scheduled on now's weekday.
func Today(programs []models.Program, now time.Time) TodayCard {
	weekday := now.Weekday().String()
	for _, p := range programs {
		if strings.EqualFold(strings.TrimSpace(p.Day), weekday) {
			return TodayCard{Title: p.Muscle + " Day", ProgramID: p.ID}
		}
	}
	return TodayCard{Title: "Rest Day"}
}
