package main

import "strings"

// moodCategories is scanned in order; the first category with a keyword
// hit wins, so "happy" outranks "neutral" outranks "sad" when an entry
// mentions several.
var moodCategories = []struct {
	name     string
	keywords []string
}{
	{moodHappy, []string{"happy", "great", "awesome", "excited", "joyful"}},
	{moodNeutral, []string{"okay", "fine", "normal", "meh"}},
	{moodSad, []string{"sad", "tired", "bad", "down", "upset"}},
}

var moodEmojis = map[string]string{
	moodHappy:   "😊",
	moodNeutral: "😐",
	moodSad:     "😢",
}

var activitySuggestions = map[string]string{
	moodHappy:   "Keep shining! Maybe share your positivity with a friend!",
	moodNeutral: "How about a relaxing walk or reading a book?",
	moodSad:     "Take it easy. Try some music or a warm drink to lift your spirits.",
}

// analyzeMood classifies free text into one of the three mood categories
// by case-insensitive substring match. Text with no keyword at all is
// neutral.
func analyzeMood(text string) string {
	text = strings.ToLower(text)
	for _, cat := range moodCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				return cat.name
			}
		}
	}
	return moodNeutral
}
