package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

var db *sql.DB

func initDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return err
	}

	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to set WAL mode: %w", err)
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		name TEXT PRIMARY KEY
	);
	CREATE TABLE IF NOT EXISTS entries (
		user_name TEXT NOT NULL REFERENCES users(name),
		date TEXT NOT NULL,
		entry TEXT NOT NULL,
		mood TEXT NOT NULL,
		UNIQUE(user_name, date)
	);
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_name TEXT NOT NULL REFERENCES users(name),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT ''
	);`

	_, err = db.Exec(schema)
	return err
}

// registerUser validates and registers a login name. Re-registering an
// existing name is not an error; created reports whether the user is new.
func registerUser(name string) (created bool, err error) {
	if strings.TrimSpace(name) == "" {
		return false, errEmptyName
	}
	return ensureUser(strings.TrimSpace(name))
}

// ensureUser inserts a user row if the name is new.
func ensureUser(name string) (created bool, err error) {
	res, err := db.Exec("INSERT OR IGNORE INTO users (name) VALUES (?)", name)
	if err != nil {
		return false, fmt.Errorf("ensure user %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// appendEntry persists one journal entry. A second entry for the same
// user and date replaces the first, matching the in-memory history.
func appendEntry(user, date, text, mood string) error {
	_, err := db.Exec(`
		INSERT INTO entries (user_name, date, entry, mood) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_name, date) DO UPDATE SET entry = ?, mood = ?
	`, user, date, text, mood, text, mood)
	if err != nil {
		return fmt.Errorf("append entry for %q: %w", user, err)
	}
	return nil
}

// listEntries returns every entry for the user, in no particular order.
func listEntries(user string) ([]JournalEntry, error) {
	rows, err := db.Query("SELECT date, entry, mood FROM entries WHERE user_name = ?", user)
	if err != nil {
		return nil, fmt.Errorf("list entries for %q: %w", user, err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.Date, &e.Text, &e.Mood); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// clearAllData wipes every table, sessions included. Irreversible.
func clearAllData() error {
	for _, stmt := range []string{
		"DELETE FROM sessions",
		"DELETE FROM entries",
		"DELETE FROM users",
		"DELETE FROM settings",
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	return nil
}

// Session management using DB
func createSession(token, userName string) error {
	_, err := db.Exec("INSERT INTO sessions (token, user_name) VALUES (?, ?)", token, userName)
	return err
}

func getSession(token string) (string, error) {
	var userName string
	err := db.QueryRow("SELECT user_name FROM sessions WHERE token = ?", token).Scan(&userName)
	return userName, err
}

func deleteSession(token string) error {
	_, err := db.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

func getSetting(key string) string {
	var val string
	db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	return val
}

func setSetting(key, value string) error {
	_, err := db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?`, key, value, value)
	return err
}
