package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/coachboard/internal/domain/store"
	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/rpggio/coachboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coachboard.db")
	data, err := json.Marshal(testserver.Fixture())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runImport(context.Background(), path, bytes.NewReader(data), &out))
	require.Contains(t, out.String(), "imported 4 weeks")
	return path
}

func TestImportExport(t *testing.T) {
	path := seededDB(t)

	var out bytes.Buffer
	require.NoError(t, runExport(context.Background(), path, &out))

	var got store.Collections
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	want := testserver.Fixture()
	require.Len(t, got.Weeks, len(want.Weeks))
	require.Len(t, got.GroupAttendees, len(want.GroupAttendees))
	require.Equal(t, want.GroupAttendees[0], got.GroupAttendees[0])

	// A second import collides on activity ids.
	data, err := json.Marshal(want)
	require.NoError(t, err)
	require.Error(t, runImport(context.Background(), path, bytes.NewReader(data), &bytes.Buffer{}))
}

func TestRunWeeks(t *testing.T) {
	path := seededDB(t)
	now := func() time.Time { return testserver.Now }

	var out bytes.Buffer
	require.NoError(t, runWeeks(context.Background(), path, 4, now, nil, &out))
	require.Contains(t, out.String(), "Jane W12")
	require.Contains(t, out.String(), "1 weeks")

	out.Reset()
	q := map[string][]string{"coachless": {"false"}, "hold_weeks": {"false"}, "completion": {"allRecords"}}
	require.NoError(t, runWeeks(context.Background(), path, 4, now, q, &out))
	require.Contains(t, out.String(), "4 weeks")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.True(t, strings.HasPrefix(lines[1], "302"))

	err := runWeeks(context.Background(), path, 4, now, map[string][]string{"range": {"someday"}}, &out)
	require.Error(t, err)
}

func TestRunDates(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDates(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), 2, &out))
	require.Contains(t, out.String(), "thisWeek     2024-12-29")
	require.Contains(t, out.String(), "nextWeek     2025-01-05")
	require.Contains(t, out.String(), "recent[1]    2024-12-22")
}

func TestRunCreateAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.db")

	var out bytes.Buffer
	require.NoError(t, runCreateAPIKey(context.Background(), path, "ops", "", &out))
	token := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(token, "cb_"))

	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()
	label, err := sqlite.NewAPIKeyRepository(db).Resolve(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "ops", label)
}
