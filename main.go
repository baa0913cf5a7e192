package main

import (
	"embed"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

//go:embed templates/*
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var templates map[string]*template.Template

func loadTemplates() {
	templates = make(map[string]*template.Template)
	for _, page := range []string{"login.html", "journal.html", "admin.html"} {
		templates[page] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Web routes
	mux.HandleFunc("GET /{$}", authWeb(handleJournal))
	mux.HandleFunc("GET /login", handleLoginPage)
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("POST /logout", authWeb(handleLogout))
	mux.HandleFunc("POST /entry", authWeb(handleAddEntry))
	mux.HandleFunc("GET /export", authWeb(handleExport))
	mux.HandleFunc("GET /admin", authWeb(handleAdmin))
	mux.HandleFunc("POST /admin/settings", authWeb(handleAdminSettings))
	mux.HandleFunc("POST /admin/clear", authWeb(handleAdminClear))

	// API routes
	mux.HandleFunc("GET /api/history", authAPI(handleAPIHistory))
	mux.HandleFunc("GET /api/summary", authAPI(handleAPISummary))
	mux.HandleFunc("POST /api/entries", authAPI(handleAPIAddEntry))

	return mux
}

func main() {
	_ = godotenv.Load()

	defaultPort, _ := strconv.Atoi(getEnv("JOURNAL_PORT", "8080"))
	port := flag.Int("port", defaultPort, "HTTP port")
	dbPath := flag.String("db", getEnv("JOURNAL_DB", "mood_journal.db"), "SQLite database path")
	flag.Parse()

	if err := initDB(*dbPath); err != nil {
		log.Fatal("Failed to init database:", err)
	}
	defer db.Close()

	loadTemplates()
	mux := newMux()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Mood Journal listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
