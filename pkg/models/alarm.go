package models

import (
	"fmt"
	"time"
)

// ChallengeType selects the puzzle a user must solve to dismiss an alarm.
type ChallengeType string

const (
	ChallengeMath   ChallengeType = "MATH"      // Solve an arithmetic problem
	ChallengeTyping ChallengeType = "AI_TYPING" // Type a generated phrase exactly
)

// SoundType identifies an alarm sound profile.
type SoundType string

const (
	SoundClassic SoundType = "CLASSIC" // Digital double-beep
	SoundGentle  SoundType = "GENTLE"  // Soft wind chimes
	SoundSiren   SoundType = "SIREN"   // Sweeping siren
	SoundCustom  SoundType = "CUSTOM"  // User-uploaded audio file
)

// MaxCustomSoundBytes is the size ceiling for uploaded custom sounds.
const MaxCustomSoundBytes = 1_500_000

// SoundSettings describes which sound an alarm plays. Data and Name are only
// set for SoundCustom. A zero Type marks a record persisted before sound
// selection existed; the store migrates it to SoundClassic on load.
type SoundSettings struct {
	Type SoundType `json:"type"`
	Data []byte    `json:"customData,omitempty"`
	Name string    `json:"name,omitempty"`
}

// Alarm is a single scheduled alarm. Days holds weekday indices
// (0 = Sunday .. 6 = Saturday); an empty Days means the alarm is one-time
// and matches any day until it is dismissed once.
type Alarm struct {
	ID            string        `json:"id"`
	Time          string        `json:"time"` // "HH:MM", 24-hour
	Label         string        `json:"label"`
	Enabled       bool          `json:"enabled"`
	ChallengeType ChallengeType `json:"challengeType"`
	Days          []int         `json:"days"`
	Sound         SoundSettings `json:"soundSettings"`
}

// DayLabels are short weekday names indexed by weekday number.
var DayLabels = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// IsOneTime reports whether the alarm fires once and then disables itself
// after a successful dismissal.
func (a *Alarm) IsOneTime() bool {
	return len(a.Days) == 0
}

// MatchesDay reports whether the alarm is eligible on the given weekday.
// One-time alarms match every day.
func (a *Alarm) MatchesDay(day time.Weekday) bool {
	if a.IsOneTime() {
		return true
	}
	for _, d := range a.Days {
		if d == int(day) {
			return true
		}
	}
	return false
}

// MatchesClock reports whether the alarm's time-of-day and repeat days match
// the given wall-clock instant. Second-level gating is the trigger engine's
// concern, not the model's.
func (a *Alarm) MatchesClock(now time.Time) bool {
	return a.Time == now.Format("15:04") && a.MatchesDay(now.Weekday())
}

// TimeOfDay parses the alarm's "HH:MM" time into hour and minute.
func (a *Alarm) TimeOfDay() (hour, minute int, err error) {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid alarm time %q: %w", a.Time, err)
	}
	return t.Hour(), t.Minute(), nil
}

// NextRing returns the next instant at which the alarm would fire, assuming
// it stays enabled. Used for tray and list display only.
func (a *Alarm) NextRing(now time.Time) (time.Time, error) {
	hour, minute, err := a.TimeOfDay()
	if err != nil {
		return time.Time{}, err
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for i := 0; i < 8; i++ {
		if candidate.After(now) && a.MatchesDay(candidate.Weekday()) {
			return candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	return time.Time{}, fmt.Errorf("alarm %s has no upcoming ring", a.ID)
}

// Validate checks that the alarm is well-formed before it is stored.
func (a *Alarm) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("alarm has no ID")
	}
	if _, _, err := a.TimeOfDay(); err != nil {
		return err
	}
	for _, d := range a.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid weekday index %d", d)
		}
	}
	switch a.ChallengeType {
	case ChallengeMath, ChallengeTyping:
	default:
		return fmt.Errorf("unknown challenge type %q", a.ChallengeType)
	}
	if a.Sound.Type == SoundCustom {
		if len(a.Sound.Data) == 0 {
			return fmt.Errorf("custom sound has no data")
		}
		if len(a.Sound.Data) > MaxCustomSoundBytes {
			return fmt.Errorf("custom sound is %d bytes, limit is %d", len(a.Sound.Data), MaxCustomSoundBytes)
		}
	}
	return nil
}

// DaysSummary renders the repeat days for list display, e.g. "Mo Tu We" or
// "Once" for a one-time alarm.
func (a *Alarm) DaysSummary() string {
	if a.IsOneTime() {
		return "Once"
	}
	out := ""
	for _, d := range a.Days {
		if d < 0 || d > 6 {
			continue
		}
		if out != "" {
			out += " "
		}
		out += DayLabels[d]
	}
	return out
}
