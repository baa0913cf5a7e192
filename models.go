package main

import "errors"

const (
	moodHappy   = "happy"
	moodNeutral = "neutral"
	moodSad     = "sad"
)

// dateLayout is the calendar-date format used everywhere: entry keys,
// storage rows and the weekly summary cutoff.
const dateLayout = "2006-01-02"

var (
	errEmptyName  = errors.New("name cannot be empty")
	errEmptyEntry = errors.New("entry cannot be empty")
	errBadDate    = errors.New("date must be YYYY-MM-DD")
)

type JournalEntry struct {
	Date string `json:"date"`
	Text string `json:"text"`
	Mood string `json:"mood"`
}
