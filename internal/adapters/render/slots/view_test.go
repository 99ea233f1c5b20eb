package slots

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/saveslots/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSlotList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	output, err := Render([]application.Slot{
		{ID: "def", Label: "OUTPOST: GUNSHIP 3/1/2026 11:00 AM", SavedAt: now.Add(-time.Hour), Selected: true},
		{ID: "abc", Label: "SAVED SESSION 2/27/2026 12:00 PM", SavedAt: now.Add(-2 * 24 * time.Hour)},
	}, RenderOptions{Now: now, ShowIDs: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Preserved Sessions")
	assert.Contains(t, output, "slots: 2")
	assert.Contains(t, output, "[x] OUTPOST: GUNSHIP 3/1/2026 11:00 AM (1 hour ago) def")
	assert.Contains(t, output, "[ ] SAVED SESSION 2/27/2026 12:00 PM (2 days ago) abc")
	assert.Less(t, strings.Index(output, "def"), strings.Index(output, "abc"))
}

func TestRenderEmptySlotList(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "slots: 0")
	assert.Contains(t, output, "No preserved sessions.")
}

func TestRenderOmitsAgeWithoutNow(t *testing.T) {
	output, err := Render([]application.Slot{
		{ID: "abc", Label: "SAVED SESSION", SavedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Selected: true},
	}, RenderOptions{DropTitle: true})

	require.NoError(t, err)
	assert.NotContains(t, output, "Preserved Sessions")
	assert.NotContains(t, output, "ago")
	assert.NotContains(t, output, "abc")
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		savedAt time.Time
		want    string
	}{
		{name: "future", savedAt: now.Add(time.Minute), want: "just now"},
		{name: "seconds", savedAt: now.Add(-30 * time.Second), want: "just now"},
		{name: "one minute", savedAt: now.Add(-time.Minute), want: "1 minute ago"},
		{name: "minutes", savedAt: now.Add(-45 * time.Minute), want: "45 minutes ago"},
		{name: "hours", savedAt: now.Add(-5 * time.Hour), want: "5 hours ago"},
		{name: "one day", savedAt: now.Add(-30 * time.Hour), want: "1 day ago"},
		{name: "zero", savedAt: time.Time{}, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatAge(tc.savedAt, now))
		})
	}
}
