package main

import (
	"context"
	"net/http"
	"sync"
)

type contextKey string

const profileContextKey contextKey = "profile"

// profiles maps session tokens to their in-memory journal cache. The
// mutex guards the map itself; each UserProfile carries its own lock
// for its history.
var profiles = struct {
	sync.Mutex
	m map[string]*UserProfile
}{m: make(map[string]*UserProfile)}

func cacheProfile(token string, p *UserProfile) {
	profiles.Lock()
	profiles.m[token] = p
	profiles.Unlock()
}

func dropProfile(token string) {
	profiles.Lock()
	delete(profiles.m, token)
	profiles.Unlock()
}

func dropAllProfiles() {
	profiles.Lock()
	profiles.m = make(map[string]*UserProfile)
	profiles.Unlock()
}

// profileForToken returns the cached profile for a session token,
// rebuilding it from the store if the process restarted since login.
func profileForToken(token string) (*UserProfile, error) {
	profiles.Lock()
	p, ok := profiles.m[token]
	profiles.Unlock()
	if ok {
		return p, nil
	}

	name, err := getSession(token)
	if err != nil {
		return nil, err
	}
	p, err = loadProfile(name)
	if err != nil {
		return nil, err
	}
	cacheProfile(token, p)
	return p, nil
}

func getContextProfile(r *http.Request) *UserProfile {
	if p, ok := r.Context().Value(profileContextKey).(*UserProfile); ok {
		return p
	}
	return nil
}

// authWeb requires a valid session cookie. Redirects to /login if not logged in.
func authWeb(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		profile, err := profileForToken(cookie.Value)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next(w, r.WithContext(ctx))
	}
}

// authAPI is authWeb with a JSON 401 instead of a redirect.
func authAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		profile, err := profileForToken(cookie.Value)
		if err != nil {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next(w, r.WithContext(ctx))
	}
}
