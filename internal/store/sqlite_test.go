package store

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanGrisales/PURR-Fect/internal/listing"
	"github.com/BryanGrisales/PURR-Fect/internal/matching"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser() *matching.UserProfile {
	return &matching.UserProfile{
		HomeType:      matching.HomeApartment,
		HoursAway:     6,
		ActivityLevel: 5,
		Experience:    matching.ExperienceFirstTime,
		Allergies:     true,
		DesiredTraits: []string{"calm", "independent"},
		Location:      "12345",
	}
}

func TestSaveUserAssignsSessionID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user := testUser()
	id, err := s.SaveUser(ctx, user)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^user_12345_\d+$`), id)
	assert.Equal(t, id, user.SessionID)

	stored, err := s.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user, stored)
}

func TestSaveUserUpsertsSameSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fixed := time.Unix(1700000000, 0)
	s.now = func() time.Time { return fixed }

	first := testUser()
	id1, err := s.SaveUser(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "user_12345_1700000000", id1)

	second := testUser()
	second.HomeType = matching.HomeFarmRural
	second.DesiredTraits = []string{"shy"}
	id2, err := s.SaveUser(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&rows))
	assert.Equal(t, 1, rows)

	stored, err := s.GetUser(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, matching.HomeFarmRural, stored.HomeType)
	assert.Equal(t, []string{"shy"}, stored.DesiredTraits)
}

func TestSaveMatchAppends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cat := &listing.Cat{ID: "42", Name: "Mochi"}
	score := &matching.Score{CatID: "42", Total: 94, Lifestyle: 39, Experience: 30, Personality: 25}

	require.NoError(t, s.SaveMatch(ctx, "user_12345_1", cat, score))
	require.NoError(t, s.SaveMatch(ctx, "user_12345_1", cat, score))
	require.NoError(t, s.SaveMatch(ctx, "user_99999_1", cat, score))

	records, err := s.ListMatches(ctx, "user_12345_1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "42", r.CatID)
	assert.Equal(t, "Mochi", r.CatName)
	assert.Equal(t, 94, r.Total)
	assert.Equal(t, 39, r.Lifestyle)
	assert.Equal(t, 30, r.Experience)
	assert.Equal(t, 25, r.Personality)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestGetUserNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetUser(context.Background(), "user_missing_0")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "user_90210_1", SessionID("90210", time.Unix(1, 0)))
}
