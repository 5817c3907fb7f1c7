package model

import "time"

// Slice is one bar or pie segment of a usage breakdown.
type Slice struct {
	Key     string  `json:"key"`
	Minutes int     `json:"minutes"`
	Percent float64 `json:"percent"`
}

type DayTotal struct {
	Date    string       `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Minutes int          `json:"minutes"`
}

type GoalProgress struct {
	Goal      Goal    `json:"goal"`
	Used      int     `json:"used"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
	Exceeded  bool    `json:"exceeded"`
}

// Summary is everything the dashboard shows for a single day.
type Summary struct {
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	ByCategory []Slice        `json:"byCategory"`
	ByApp      []Slice        `json:"byApp"`
	ByDevice   []Slice        `json:"byDevice"`
	Week       []DayTotal     `json:"week"`
	Goals      []GoalProgress `json:"goals"`
	Entries    []TimeEntry    `json:"entries"`
}
