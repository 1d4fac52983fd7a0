package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validAlarm() Alarm {
	return Alarm{
		ID:            "a1",
		Time:          "07:00",
		Enabled:       true,
		ChallengeType: ChallengeMath,
		Sound:         SoundSettings{Type: SoundClassic},
	}
}

// TestValidate walks the validation rules: time format, weekday range,
// challenge type, and custom sound constraints.
func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Alarm)
		wantOK bool
	}{
		{"valid one-time", func(a *Alarm) {}, true},
		{"valid repeating", func(a *Alarm) { a.Days = []int{0, 6} }, true},
		{"valid typing", func(a *Alarm) { a.ChallengeType = ChallengeTyping }, true},
		{"missing id", func(a *Alarm) { a.ID = "" }, false},
		{"bad hour", func(a *Alarm) { a.Time = "25:00" }, false},
		{"bad minute", func(a *Alarm) { a.Time = "07:60" }, false},
		{"not a time", func(a *Alarm) { a.Time = "seven" }, false},
		{"weekday too low", func(a *Alarm) { a.Days = []int{-1} }, false},
		{"weekday too high", func(a *Alarm) { a.Days = []int{7} }, false},
		{"unknown challenge", func(a *Alarm) { a.ChallengeType = "RIDDLE" }, false},
		{"custom sound without data", func(a *Alarm) {
			a.Sound = SoundSettings{Type: SoundCustom, Name: "x.wav"}
		}, false},
		{"custom sound over limit", func(a *Alarm) {
			a.Sound = SoundSettings{Type: SoundCustom, Data: make([]byte, MaxCustomSoundBytes+1)}
		}, false},
		{"custom sound at limit", func(a *Alarm) {
			a.Sound = SoundSettings{Type: SoundCustom, Data: make([]byte, MaxCustomSoundBytes)}
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			alarm := validAlarm()
			tc.mutate(&alarm)

			err := alarm.Validate()
			if tc.wantOK {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

// TestMatchesDay verifies weekday matching, including the one-time rule that
// an empty day set matches every day.
func TestMatchesDay(t *testing.T) {
	t.Parallel()

	oneTime := validAlarm()
	require.True(t, oneTime.IsOneTime())
	for d := time.Sunday; d <= time.Saturday; d++ {
		require.True(t, oneTime.MatchesDay(d))
	}

	weekdays := validAlarm()
	weekdays.Days = []int{1, 2, 3, 4, 5}
	require.False(t, weekdays.IsOneTime())
	require.True(t, weekdays.MatchesDay(time.Monday))
	require.True(t, weekdays.MatchesDay(time.Friday))
	require.False(t, weekdays.MatchesDay(time.Saturday))
	require.False(t, weekdays.MatchesDay(time.Sunday))
}

// TestMatchesClock verifies minute-level clock matching.
func TestMatchesClock(t *testing.T) {
	t.Parallel()

	alarm := validAlarm()
	alarm.Days = []int{int(time.Monday)}

	// January 5, 2026 is a Monday.
	monday := time.Date(2026, time.January, 5, 7, 0, 42, 0, time.Local)
	require.True(t, alarm.MatchesClock(monday), "seconds must not affect the match")
	require.False(t, alarm.MatchesClock(monday.Add(time.Minute)))
	require.False(t, alarm.MatchesClock(monday.AddDate(0, 0, 1)), "Tuesday must not match")
}

// TestNextRing verifies the next-occurrence computation used by the tray.
func TestNextRing(t *testing.T) {
	t.Parallel()

	// Monday 08:00.
	now := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.Local)

	// One-time alarm earlier in the day rolls to tomorrow.
	oneTime := validAlarm()
	next, err := oneTime.NextRing(now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.January, 6, 7, 0, 0, 0, time.Local), next)

	// One-time alarm later in the day fires today.
	tonight := validAlarm()
	tonight.Time = "22:30"
	next, err = tonight.NextRing(now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.January, 5, 22, 30, 0, 0, time.Local), next)

	// Friday-only alarm waits for Friday.
	friday := validAlarm()
	friday.Days = []int{5}
	next, err = friday.NextRing(now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.January, 9, 7, 0, 0, 0, time.Local), next)
	require.Equal(t, time.Friday, next.Weekday())

	// Malformed time reports an error.
	broken := validAlarm()
	broken.Time = "nope"
	_, err = broken.NextRing(now)
	require.Error(t, err)
}

// TestDaysSummary verifies list rendering of repeat days.
func TestDaysSummary(t *testing.T) {
	t.Parallel()

	alarm := validAlarm()
	require.Equal(t, "Once", alarm.DaysSummary())

	alarm.Days = []int{1, 2, 3}
	require.Equal(t, "Mo Tu We", alarm.DaysSummary())

	alarm.Days = []int{0, 6}
	require.Equal(t, "Su Sa", alarm.DaysSummary())
}

// TestTimeOfDay verifies HH:MM parsing.
func TestTimeOfDay(t *testing.T) {
	t.Parallel()

	alarm := validAlarm()
	alarm.Time = "23:59"

	hour, minute, err := alarm.TimeOfDay()
	require.NoError(t, err)
	require.Equal(t, 23, hour)
	require.Equal(t, 59, minute)
}
