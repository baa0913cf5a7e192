package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// exportJournal writes the profile's entries to a plain-text file at
// path: a header line naming the user, then one Date/Entry/Mood block
// per entry in ascending date order.
func exportJournal(p *UserProfile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export journal: %w", err)
	}

	history := p.History()
	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s's Mood Journal\n\n", p.Name)
	for _, date := range dates {
		e := history[date]
		fmt.Fprintf(w, "Date: %s\nEntry: %s\nMood: %s\n\n", e.Date, e.Text, e.Mood)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("export journal: %w", err)
	}
	return f.Close()
}
