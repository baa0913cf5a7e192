package main

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestProfile(t *testing.T, name string) *UserProfile {
	t.Helper()
	if _, err := ensureUser(name); err != nil {
		t.Fatalf("ensure user %s: %v", name, err)
	}
	p, err := loadProfile(name)
	if err != nil {
		t.Fatalf("load profile %s: %v", name, err)
	}
	return p
}

func TestAddEntryRoundTrip(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	if err := p.AddEntry("2026-08-01", "I feel great today", moodHappy); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	got, ok := p.History()["2026-08-01"]
	if !ok {
		t.Fatal("entry missing from history")
	}
	if got.Text != "I feel great today" || got.Mood != moodHappy {
		t.Fatalf("unexpected history entry: %+v", got)
	}

	// A fresh profile loaded from the store must agree with the cache.
	reloaded, err := loadProfile("Alice")
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if reloaded.History()["2026-08-01"] != got {
		t.Fatalf("reloaded history disagrees: %+v", reloaded.History()["2026-08-01"])
	}
}

func TestAddEntrySameDateOverwrites(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	if err := p.AddEntry("2026-08-01", "feeling fine", moodNeutral); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := p.AddEntry("2026-08-01", "now I am sad", moodSad); err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(p.History()) != 1 {
		t.Fatalf("expected one entry for the date, got %d", len(p.History()))
	}
	if p.History()["2026-08-01"].Mood != moodSad {
		t.Fatalf("expected overwrite, got %+v", p.History()["2026-08-01"])
	}
}

func TestAddEntryValidation(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	if err := p.AddEntry("2026-08-01", "   ", moodNeutral); err != errEmptyEntry {
		t.Fatalf("expected errEmptyEntry, got %v", err)
	}
	if err := p.AddEntry("01/08/2026", "valid text", moodNeutral); err != errBadDate {
		t.Fatalf("expected errBadDate, got %v", err)
	}
	if len(p.History()) != 0 {
		t.Fatal("rejected entries must not reach the history")
	}
}

func TestMostCommonMood(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	if _, ok := p.MostCommonMood(); ok {
		t.Fatal("expected no mood for an empty history")
	}

	entries := []struct{ date, text, mood string }{
		{"2026-08-01", "great start", moodHappy},
		{"2026-08-02", "awesome day", moodHappy},
		{"2026-08-03", "so tired", moodSad},
	}
	for _, e := range entries {
		if err := p.AddEntry(e.date, e.text, e.mood); err != nil {
			t.Fatalf("add %s: %v", e.date, err)
		}
	}

	mood, ok := p.MostCommonMood()
	if !ok || mood != moodHappy {
		t.Fatalf("expected happy majority, got %q ok=%v", mood, ok)
	}
}

func TestMostCommonMoodTieBreaksByPriority(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	// One of each: a three-way tie resolves to the highest-priority
	// category, which is happy.
	entries := []struct{ date, mood string }{
		{"2026-08-01", moodSad},
		{"2026-08-02", moodNeutral},
		{"2026-08-03", moodHappy},
	}
	for _, e := range entries {
		if err := p.AddEntry(e.date, "entry", e.mood); err != nil {
			t.Fatalf("add %s: %v", e.date, err)
		}
	}

	mood, ok := p.MostCommonMood()
	if !ok || mood != moodHappy {
		t.Fatalf("expected tie to resolve to happy, got %q", mood)
	}
}

func TestWeeklySummaryWindow(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	// The 7-day boundary itself is inside the window, 8 days back is not.
	onBoundary := now.AddDate(0, 0, -7).Format(dateLayout)
	outside := now.AddDate(0, 0, -8).Format(dateLayout)
	recent := now.AddDate(0, 0, -1).Format(dateLayout)

	for _, e := range []struct{ date, mood string }{
		{onBoundary, moodHappy},
		{outside, moodSad},
		{recent, moodHappy},
	} {
		if err := p.AddEntry(e.date, "entry", e.mood); err != nil {
			t.Fatalf("add %s: %v", e.date, err)
		}
	}

	summary := p.WeeklySummary(now)
	if summary[moodHappy] != 2 {
		t.Fatalf("expected 2 happy entries in window, got %d", summary[moodHappy])
	}
	if summary[moodSad] != 0 {
		t.Fatalf("entry dated 8 days back must be excluded, got %d sad", summary[moodSad])
	}
}

func TestWeeklySummaryEmpty(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	if got := p.WeeklySummary(time.Now()); len(got) != 0 {
		t.Fatalf("expected empty summary, got %v", got)
	}
}

func TestConcurrentEntriesAndViews(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	// A double-submitted entry can race a page view on the same
	// session; the profile must survive writes concurrent with every
	// read path. Run with -race.
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < 50; i++ {
			date := fmt.Sprintf("2026-07-%02d", i%28+1)
			if err := p.AddEntry(date, "busy day", moodNeutral); err != nil {
				t.Errorf("add %s: %v", date, err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < 50; i++ {
			p.SortedHistory()
			p.MoodCounts()
			p.MostCommonMood()
			p.WeeklySummary(time.Now())
			p.History()
		}
	}()

	close(start)
	wg.Wait()

	if len(p.History()) != 28 {
		t.Fatalf("expected 28 distinct dates, got %d", len(p.History()))
	}
}

func TestSortedHistoryIsNewestFirst(t *testing.T) {
	newTestDB(t)
	p := newTestProfile(t, "Alice")

	for _, date := range []string{"2026-08-02", "2026-08-05", "2026-08-01"} {
		if err := p.AddEntry(date, "entry", moodNeutral); err != nil {
			t.Fatalf("add %s: %v", date, err)
		}
	}

	sorted := p.SortedHistory()
	want := []string{"2026-08-05", "2026-08-02", "2026-08-01"}
	for i, date := range want {
		if sorted[i].Date != date {
			t.Fatalf("position %d: expected %s, got %s", i, date, sorted[i].Date)
		}
	}
}
