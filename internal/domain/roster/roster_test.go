package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAnchor = time.Date(2025, time.June, 14, 0, 0, 0, 0, time.Local)

func newTestRoster(t *testing.T) *Roster {
	t.Helper()
	r, err := New([]string{"Аня", "Ларик", "Маша"}, testAnchor, 3)
	require.NoError(t, err)
	return r
}

// day returns the date n days after the anchor (n may be negative).
func day(n int) time.Time {
	return testAnchor.AddDate(0, 0, n)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		slotSpan int
	}{
		{"empty roster", nil, 3},
		{"blank name", []string{"Аня", " "}, 3},
		{"duplicate name", []string{"Аня", "Аня"}, 3},
		{"zero slot span", []string{"Аня"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names, testAnchor, tt.slotSpan)
			assert.Error(t, err)
		})
	}
}

func TestDutyHolderConcreteCycle(t *testing.T) {
	r := newTestRoster(t)

	tests := []struct {
		day    int
		holder Participant
		onDuty bool
	}{
		{0, "Аня", true},
		{1, "", false},
		{2, "", false},
		{3, "Ларик", true},
		{4, "", false},
		{5, "", false},
		{6, "Маша", true},
		{7, "", false},
		{8, "", false},
		{9, "Аня", true},
	}
	for _, tt := range tests {
		holder, ok := r.DutyHolder(day(tt.day))
		assert.Equal(t, tt.onDuty, ok, "day %d", tt.day)
		assert.Equal(t, tt.holder, holder, "day %d", tt.day)
	}
}

func TestDutyHolderPeriodicity(t *testing.T) {
	r := newTestRoster(t)
	cycle := r.CycleLength()
	require.Equal(t, 9, cycle)

	for n := -cycle; n < 2*cycle; n++ {
		h1, ok1 := r.DutyHolder(day(n))
		h2, ok2 := r.DutyHolder(day(n + cycle))
		assert.Equal(t, ok1, ok2, "day %d", n)
		assert.Equal(t, h1, h2, "day %d", n)
	}
}

func TestDutyHolderBeforeAnchor(t *testing.T) {
	r := newTestRoster(t)

	// Offsets must normalize into [0, cycle), never flip sign.
	tests := []struct {
		day    int
		holder Participant
		onDuty bool
	}{
		{-9, "Аня", true},
		{-6, "Ларик", true},
		{-3, "Маша", true},
		{-1, "", false},
		{-8, "", false},
	}
	for _, tt := range tests {
		holder, ok := r.DutyHolder(day(tt.day))
		assert.Equal(t, tt.onDuty, ok, "day %d", tt.day)
		assert.Equal(t, tt.holder, holder, "day %d", tt.day)
	}
}

func TestDutyHolderIgnoresTimeOfDay(t *testing.T) {
	r := newTestRoster(t)

	late := day(3).Add(23*time.Hour + 59*time.Minute)
	holder, ok := r.DutyHolder(late)
	assert.True(t, ok)
	assert.Equal(t, Participant("Ларик"), holder)
}

func TestNextOccurrenceInclusiveLowerBound(t *testing.T) {
	r := newTestRoster(t)

	// A duty day equal to from returns from itself, not the next cycle.
	next, err := r.NextOccurrence("Аня", day(0))
	require.NoError(t, err)
	assert.True(t, next.Equal(day(0)), "want day 0, got %s", next)
}

func TestNextOccurrenceScansForward(t *testing.T) {
	r := newTestRoster(t)

	next, err := r.NextOccurrence("Маша", day(1))
	require.NoError(t, err)
	assert.True(t, next.Equal(day(6)), "want day 6, got %s", next)

	next, err = r.NextOccurrence("Ларик", day(2))
	require.NoError(t, err)
	assert.True(t, next.Equal(day(3)), "want day 3, got %s", next)

	// Past this cycle's slot: rolls over to the next cycle.
	next, err = r.NextOccurrence("Аня", day(1))
	require.NoError(t, err)
	assert.True(t, next.Equal(day(9)), "want day 9, got %s", next)
}

func TestNextOccurrenceMinimality(t *testing.T) {
	r := newTestRoster(t)

	for _, p := range r.Participants() {
		for n := -3; n < r.CycleLength(); n++ {
			from := day(n)
			next, err := r.NextOccurrence(p, from)
			require.NoError(t, err)

			holder, ok := r.DutyHolder(next)
			require.True(t, ok, "participant %s from day %d", p, n)
			require.Equal(t, p, holder, "participant %s from day %d", p, n)

			// No earlier date in [from, next) may be p's duty day.
			for d := from; d.Before(next); d = d.AddDate(0, 0, 1) {
				if h, ok := r.DutyHolder(d); ok {
					require.NotEqual(t, p, h, "found earlier occurrence on %s", d)
				}
			}
		}
	}
}

func TestNextOccurrenceUnknownParticipant(t *testing.T) {
	r := newTestRoster(t)

	_, err := r.NextOccurrence("Никто", day(0))
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestFindAndParticipants(t *testing.T) {
	r := newTestRoster(t)

	p, ok := r.Find("Ларик")
	assert.True(t, ok)
	assert.Equal(t, Participant("Ларик"), p)

	_, ok = r.Find("ларик")
	assert.False(t, ok, "matching is case-sensitive")

	assert.Equal(t, []Participant{"Аня", "Ларик", "Маша"}, r.Participants())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "14 июня", FormatDate(time.Date(2025, time.June, 14, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "1 января", FormatDate(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)))
}
