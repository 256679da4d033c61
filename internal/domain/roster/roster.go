package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Participant is one member of the fixed duty roster. Roster order is
// significant: it defines which rotation slot each participant occupies.
type Participant string

// ErrUnknownParticipant is returned when a name is not part of the roster.
var ErrUnknownParticipant = errors.New("participant is not part of the roster")

// Roster holds the fixed, ordered duty rotation. Participant i is on duty on
// every date whose cycle offset equals i*slotSpan; the pattern repeats every
// len(participants)*slotSpan days, counted from the anchor date (day zero).
type Roster struct {
	participants []Participant
	anchor       time.Time // local midnight of day zero
	slotSpan     int
}

// New builds a roster from an ordered list of names. Names must be non-empty
// and unique; slotSpan is the number of days each participant's block spans
// (one duty day followed by slotSpan-1 rest days).
func New(names []string, anchor time.Time, slotSpan int) (*Roster, error) {
	if len(names) == 0 {
		return nil, errors.New("roster: at least one participant is required")
	}
	if slotSpan < 1 {
		return nil, fmt.Errorf("roster: slot span must be at least 1 day, got %d", slotSpan)
	}

	seen := make(map[string]struct{}, len(names))
	participants := make([]Participant, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, errors.New("roster: participant name must not be empty")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("roster: duplicate participant %q", name)
		}
		seen[name] = struct{}{}
		participants = append(participants, Participant(name))
	}

	return &Roster{
		participants: participants,
		anchor:       Midnight(anchor),
		slotSpan:     slotSpan,
	}, nil
}

// Midnight truncates t to midnight in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the number of whole calendar days from a to b.
// Both dates are re-anchored to UTC first so a DST transition in the local
// zone cannot shift the count.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// CycleLength returns the repeating period of the rotation in days.
func (r *Roster) CycleLength() int {
	return len(r.participants) * r.slotSpan
}

// Participants returns the roster in rotation order.
func (r *Roster) Participants() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Find returns the participant with the given name, if the roster has one.
func (r *Roster) Find(name string) (Participant, bool) {
	for _, p := range r.participants {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// DutyHolder returns the participant on duty on the given date, if any.
// Time of day is ignored. Dates before the anchor are valid: the cycle
// offset is always normalized into [0, cycle length), so the sign of the
// day difference never leaks into the result.
func (r *Roster) DutyHolder(date time.Time) (Participant, bool) {
	cycle := r.CycleLength()
	offset := daysBetween(r.anchor, date) % cycle
	if offset < 0 {
		offset += cycle
	}
	if offset%r.slotSpan != 0 {
		return "", false
	}
	return r.participants[offset/r.slotSpan], true
}

// NextOccurrence returns the earliest date d >= from on which p is on duty.
// The lower bound is inclusive: if from itself is p's duty day, from is
// returned, not the following cycle.
func (r *Roster) NextOccurrence(p Participant, from time.Time) (time.Time, error) {
	if _, ok := r.Find(string(p)); !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownParticipant, string(p))
	}

	// Every participant occupies exactly one offset per cycle, so scanning
	// one full cycle always terminates with a hit.
	d := Midnight(from)
	for i := 0; i < r.CycleLength(); i++ {
		if holder, ok := r.DutyHolder(d); ok && holder == p {
			return d, nil
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, fmt.Errorf("roster: no occurrence for %q within one cycle", string(p))
}
