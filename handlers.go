package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type moodCount struct {
	Mood  string
	Emoji string
	Count int
}

// orderedCounts flattens a mood→count map into the fixed category order
// so templates render deterministically.
func orderedCounts(counts map[string]int) []moodCount {
	var out []moodCount
	for _, cat := range moodCategories {
		if n := counts[cat.name]; n > 0 {
			out = append(out, moodCount{Mood: cat.name, Emoji: moodEmojis[cat.name], Count: n})
		}
	}
	return out
}

func journalData(p *UserProfile) map[string]interface{} {
	data := map[string]interface{}{
		"Profile": p,
		"History": p.SortedHistory(),
		"Counts":  orderedCounts(p.MoodCounts()),
		"Weekly":  orderedCounts(p.WeeklySummary(time.Now())),
	}
	if mood, ok := p.MostCommonMood(); ok {
		data["MostCommon"] = mood
		data["MostCommonEmoji"] = moodEmojis[mood]
	}
	return data
}

func handleJournal(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)
	data := journalData(p)
	switch r.URL.Query().Get("welcome") {
	case "new":
		data["Info"] = fmt.Sprintf("Welcome, %s!", p.Name)
	case "back":
		data["Info"] = fmt.Sprintf("Welcome back, %s!", p.Name)
	}
	templates["journal.html"].ExecuteTemplate(w, "journal.html", data)
}

func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	templates["login.html"].ExecuteTemplate(w, "login.html", nil)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	created, err := registerUser(name)
	if err != nil {
		msg := "Could not open your journal. Try again."
		if errors.Is(err, errEmptyName) {
			msg = "Name cannot be empty."
		} else {
			log.Printf("register %q: %v", name, err)
		}
		templates["login.html"].ExecuteTemplate(w, "login.html", map[string]string{"Error": msg})
		return
	}

	profile, err := loadProfile(name)
	if err != nil {
		log.Printf("load profile %q: %v", name, err)
		templates["login.html"].ExecuteTemplate(w, "login.html", map[string]string{"Error": "Could not open your journal. Try again."})
		return
	}

	token := uuid.NewString()
	if err := createSession(token, name); err != nil {
		log.Printf("create session for %q: %v", name, err)
		templates["login.html"].ExecuteTemplate(w, "login.html", map[string]string{"Error": "Could not open your journal. Try again."})
		return
	}
	cacheProfile(token, profile)

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if created {
		http.Redirect(w, r, "/?welcome=new", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/?welcome=back", http.StatusSeeOther)
	}
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session")
	if err == nil {
		deleteSession(cookie.Value)
		dropProfile(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   "session",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func handleAddEntry(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)
	text := r.FormValue("entry")

	date := time.Now().Format(dateLayout)
	mood := analyzeMood(text)
	if err := p.AddEntry(date, text, mood); err != nil {
		data := journalData(p)
		if errors.Is(err, errEmptyEntry) {
			data["Error"] = "Entry cannot be empty."
		} else {
			log.Printf("add entry for %q: %v", p.Name, err)
			data["Error"] = "Could not save your entry. Try again."
		}
		templates["journal.html"].ExecuteTemplate(w, "journal.html", data)
		return
	}

	announceEntryIfEnabled(p.Name, date, mood)

	// Re-render with the recorded mood and suggestion rather than
	// redirecting, so the flash survives without extra state.
	data := journalData(p)
	data["Recorded"] = mood
	data["RecordedEmoji"] = moodEmojis[mood]
	data["Suggestion"] = activitySuggestions[mood]
	templates["journal.html"].ExecuteTemplate(w, "journal.html", data)
}

func handleExport(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)

	path := filepath.Join(os.TempDir(), fmt.Sprintf("mood_journal_%s.txt", uuid.NewString()))
	if err := exportJournal(p, path); err != nil {
		log.Printf("export for %q: %v", p.Name, err)
		data := journalData(p)
		data["Error"] = "Could not export your journal."
		templates["journal.html"].ExecuteTemplate(w, "journal.html", data)
		return
	}
	defer os.Remove(path)

	w.Header().Set("Content-Disposition", `attachment; filename="mood_journal.txt"`)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, path)
}

func handleAdmin(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)
	data := map[string]interface{}{
		"Profile":         p,
		"AnnounceEnabled": getSetting("announce_enabled") == "1",
		"AnnounceURL":     getSetting("announce_url"),
	}
	templates["admin.html"].ExecuteTemplate(w, "admin.html", data)
}

func handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	enabled := "0"
	if r.FormValue("announce_enabled") == "on" {
		enabled = "1"
	}
	setSetting("announce_enabled", enabled)
	setSetting("announce_url", strings.TrimSpace(r.FormValue("announce_url")))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func handleAdminClear(w http.ResponseWriter, r *http.Request) {
	if err := clearAllData(); err != nil {
		log.Printf("clear data: %v", err)
		http.Error(w, "failed to clear data", http.StatusInternalServerError)
		return
	}
	dropAllProfiles()

	http.SetCookie(w, &http.Cookie{
		Name:   "session",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// API handlers

func handleAPIHistory(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)
	history := p.SortedHistory()
	if history == nil {
		history = []JournalEntry{}
	}
	jsonResponse(w, history)
}

func handleAPISummary(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)
	summary := map[string]interface{}{
		"counts": p.MoodCounts(),
		"weekly": p.WeeklySummary(time.Now()),
	}
	if mood, ok := p.MostCommonMood(); ok {
		summary["most_common"] = mood
	}
	jsonResponse(w, summary)
}

func handleAPIAddEntry(w http.ResponseWriter, r *http.Request) {
	p := getContextProfile(r)
	var req struct {
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format(dateLayout)
	}

	mood := analyzeMood(req.Text)
	if err := p.AddEntry(req.Date, req.Text, mood); err != nil {
		switch {
		case errors.Is(err, errEmptyEntry), errors.Is(err, errBadDate):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("api add entry for %q: %v", p.Name, err)
			jsonError(w, "failed to save entry", http.StatusInternalServerError)
		}
		return
	}

	announceEntryIfEnabled(p.Name, req.Date, mood)
	jsonResponse(w, map[string]string{
		"date":       req.Date,
		"mood":       mood,
		"suggestion": activitySuggestions[mood],
	})
}

func jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
