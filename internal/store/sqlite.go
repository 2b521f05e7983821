// Package store persists adopter profiles and their top matches in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BryanGrisales/PURR-Fect/internal/listing"
	"github.com/BryanGrisales/PURR-Fect/internal/matching"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "purrfect_match.db"

// ErrUserNotFound is returned when a session has no stored profile.
var ErrUserNotFound = errors.New("user profile not found")

type SQLiteStore struct {
	db *sql.DB
	// now is swapped in tests.
	now func() time.Time
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultPath
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createUsers = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL UNIQUE,
  home_type TEXT NOT NULL,
  hours_away INTEGER NOT NULL,
  activity_level INTEGER NOT NULL,
  experience TEXT NOT NULL,
  allergies BOOLEAN NOT NULL,
  desired_traits TEXT NOT NULL DEFAULT '[]',
  location TEXT NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
	const createMatches = `
CREATE TABLE IF NOT EXISTS matches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL,
  cat_id TEXT NOT NULL,
  cat_name TEXT NOT NULL,
  total_score INTEGER NOT NULL,
  lifestyle_score INTEGER NOT NULL,
  experience_score INTEGER NOT NULL,
  personality_score INTEGER NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY (session_id) REFERENCES users (session_id)
);
`
	for _, stmt := range []string{
		createUsers,
		createMatches,
		`CREATE INDEX IF NOT EXISTS idx_matches_session ON matches(session_id);`,
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// SessionID builds the identifier of a profile saved at the given time.
func SessionID(location string, at time.Time) string {
	return fmt.Sprintf("user_%s_%d", location, at.Unix())
}

// SaveUser upserts the profile under a generated session id, assigns that id
// to the profile and returns it.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *matching.UserProfile) (string, error) {
	sessionID := SessionID(user.Location, s.now())

	traits, err := json.Marshal(user.DesiredTraits)
	if err != nil {
		return "", fmt.Errorf("marshal desired traits: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO users
(session_id, home_type, hours_away, activity_level, experience, allergies, desired_traits, location)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
  home_type = excluded.home_type,
  hours_away = excluded.hours_away,
  activity_level = excluded.activity_level,
  experience = excluded.experience,
  allergies = excluded.allergies,
  desired_traits = excluded.desired_traits,
  location = excluded.location
`,
		sessionID, string(user.HomeType), user.HoursAway, user.ActivityLevel,
		string(user.Experience), user.Allergies, string(traits), user.Location,
	)
	if err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}

	user.SessionID = sessionID
	return sessionID, nil
}

// SaveMatch appends a match row. Saving the same cat twice stores two rows.
func (s *SQLiteStore) SaveMatch(ctx context.Context, sessionID string, cat *listing.Cat, score *matching.Score) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO matches
(session_id, cat_id, cat_name, total_score, lifestyle_score, experience_score, personality_score)
VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		sessionID, cat.ID, cat.Name, score.Total, score.Lifestyle, score.Experience, score.Personality,
	)
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

// MatchRecord is a stored match row.
type MatchRecord struct {
	SessionID   string
	CatID       string
	CatName     string
	Total       int
	Lifestyle   int
	Experience  int
	Personality int
	CreatedAt   time.Time
}

// GetUser loads the profile saved under sessionID.
func (s *SQLiteStore) GetUser(ctx context.Context, sessionID string) (*matching.UserProfile, error) {
	var (
		home, experience, traits string
		user                     matching.UserProfile
	)

	err := s.db.QueryRowContext(ctx, `
SELECT session_id, home_type, hours_away, activity_level, experience, allergies, desired_traits, location
FROM users WHERE session_id = ?
`, sessionID).Scan(
		&user.SessionID, &home, &user.HoursAway, &user.ActivityLevel,
		&experience, &user.Allergies, &traits, &user.Location,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.HomeType, err = matching.ParseHomeType(home); err != nil {
		return nil, err
	}
	if user.Experience, err = matching.ParseExperience(experience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(traits), &user.DesiredTraits); err != nil {
		return nil, fmt.Errorf("decode desired traits: %w", err)
	}

	return &user, nil
}

// ListMatches returns the stored matches of a session in insertion order.
func (s *SQLiteStore) ListMatches(ctx context.Context, sessionID string) ([]MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, cat_id, cat_name, total_score, lifestyle_score, experience_score, personality_score, created_at
FROM matches WHERE session_id = ?
ORDER BY id ASC
`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var r MatchRecord
		if err := rows.Scan(
			&r.SessionID, &r.CatID, &r.CatName, &r.Total,
			&r.Lifestyle, &r.Experience, &r.Personality, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
