package main

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// UserProfile caches one user's full entry history in memory, keyed by
// date. It is loaded from the store at login and kept write-through.
// The mutex guards history: the server can race a submit against a
// page view on the same session cookie.
type UserProfile struct {
	Name string

	mu      sync.RWMutex
	history map[string]JournalEntry
}

func loadProfile(name string) (*UserProfile, error) {
	entries, err := listEntries(name)
	if err != nil {
		return nil, err
	}
	p := &UserProfile{Name: name, history: make(map[string]JournalEntry, len(entries))}
	for _, e := range entries {
		p.history[e.Date] = e
	}
	return p, nil
}

// AddEntry persists the entry and updates the cache. A same-date entry
// overwrites the previous one.
func (p *UserProfile) AddEntry(date, text, mood string) error {
	if strings.TrimSpace(text) == "" {
		return errEmptyEntry
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return errBadDate
	}
	if err := appendEntry(p.Name, date, text, mood); err != nil {
		return err
	}
	p.mu.Lock()
	p.history[date] = JournalEntry{Date: date, Text: text, Mood: mood}
	p.mu.Unlock()
	return nil
}

// History returns a snapshot of the date-keyed cache.
func (p *UserProfile) History() map[string]JournalEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snapshot := make(map[string]JournalEntry, len(p.history))
	for date, e := range p.history {
		snapshot[date] = e
	}
	return snapshot
}

// SortedHistory returns all entries newest-first, for display.
func (p *UserProfile) SortedHistory() []JournalEntry {
	p.mu.RLock()
	entries := make([]JournalEntry, 0, len(p.history))
	for _, e := range p.history {
		entries = append(entries, e)
	}
	p.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries
}

// MoodCounts tallies the full history per mood category.
func (p *UserProfile) MoodCounts() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	counts := make(map[string]int)
	for _, e := range p.history {
		counts[e.Mood]++
	}
	return counts
}

// MostCommonMood returns the majority mood over the whole history.
// Ties go to the higher-priority category (happy, then neutral, then
// sad). ok is false when there are no entries.
func (p *UserProfile) MostCommonMood() (mood string, ok bool) {
	counts := p.MoodCounts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return "", false
	}
	best, bestCount := "", -1
	for _, cat := range moodCategories {
		if counts[cat.name] > bestCount {
			best, bestCount = cat.name, counts[cat.name]
		}
	}
	return best, true
}

// WeeklySummary counts entries per mood within the 7 days ending at now.
// Dates are compared calendar-day to calendar-day; an entry dated exactly
// 7 days before now is included, 8 days is not. The map is empty when no
// entry falls in the window.
func (p *UserProfile) WeeklySummary(now time.Time) map[string]int {
	cutoff := now.AddDate(0, 0, -7).Format(dateLayout)
	counts := make(map[string]int)
	p.mu.RLock()
	defer p.mu.RUnlock()
	for date, e := range p.history {
		if date >= cutoff {
			counts[e.Mood]++
		}
	}
	return counts
}
