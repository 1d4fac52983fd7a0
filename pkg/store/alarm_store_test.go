package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/wakemind/wakemind/pkg/models"
)

// Store tests drive a real fyne.Preferences from the Fyne test app, so the
// full encode/decode path is exercised. They deliberately avoid t.Parallel:
// test.NewApp swaps the process-wide current app.

func storeAlarm(id, at string) models.Alarm {
	return models.Alarm{
		ID:            id,
		Time:          at,
		Label:         "alarm " + id,
		Enabled:       true,
		ChallengeType: models.ChallengeMath,
		Sound:         models.SoundSettings{Type: models.SoundClassic},
	}
}

// TestRoundTrip verifies that alarms added through one Store are identical
// when a fresh Store loads the same preferences, custom sound bytes
// included.
func TestRoundTrip(t *testing.T) {
	prefs := test.NewApp().Preferences()

	s := NewStore(prefs)
	custom := storeAlarm("a2", "08:30")
	custom.Days = []int{1, 2, 3}
	custom.ChallengeType = models.ChallengeTyping
	custom.Sound = models.SoundSettings{
		Type: models.SoundCustom,
		Data: []byte{0x52, 0x49, 0x46, 0x46},
		Name: "rooster.wav",
	}

	require.NoError(t, s.Add(storeAlarm("a1", "07:00")))
	require.NoError(t, s.Add(custom))

	reloaded := NewStore(prefs)
	got := reloaded.Alarms()
	require.Len(t, got, 2)
	require.Equal(t, s.Alarms(), got)
	require.Equal(t, custom, got[1])
}

// TestLoadEmptyPreferences verifies a fresh store starts with no alarms and
// no auth flag.
func TestLoadEmptyPreferences(t *testing.T) {
	s := NewStore(test.NewApp().Preferences())

	require.Empty(t, s.Alarms())
	require.False(t, s.IsAuthenticated())
}

// TestLoadCorruptDataStartsEmpty verifies that unparseable stored JSON is
// discarded rather than blocking startup, and that the store is writable
// afterwards.
func TestLoadCorruptDataStartsEmpty(t *testing.T) {
	prefs := test.NewApp().Preferences()
	prefs.SetString("wakemind_alarms", "{definitely not json")

	s := NewStore(prefs)
	require.Empty(t, s.Alarms())

	require.NoError(t, s.Add(storeAlarm("a1", "07:00")))
	require.Len(t, NewStore(prefs).Alarms(), 1)
}

// TestLoadMigratesMissingSound verifies that alarms persisted before sound
// selection existed come back with the classic sound.
func TestLoadMigratesMissingSound(t *testing.T) {
	prefs := test.NewApp().Preferences()
	prefs.SetString("wakemind_alarms",
		`[{"id":"old","time":"06:45","label":"pre-sound","enabled":true,"challengeType":"MATH","days":[1,3,5]}]`)

	s := NewStore(prefs)
	got := s.Alarms()
	require.Len(t, got, 1)
	require.Equal(t, models.SoundClassic, got[0].Sound.Type)
	require.Empty(t, got[0].Sound.Data)
}

// TestAddKeepsTimeOrderWithStableTies verifies display order: ascending by
// time-of-day, with equal times kept in insertion order even across a
// reload.
func TestAddKeepsTimeOrderWithStableTies(t *testing.T) {
	prefs := test.NewApp().Preferences()
	s := NewStore(prefs)

	require.NoError(t, s.Add(storeAlarm("late", "09:00")))
	require.NoError(t, s.Add(storeAlarm("tie-first", "07:00")))
	require.NoError(t, s.Add(storeAlarm("tie-second", "07:00")))

	ids := func(alarms []models.Alarm) []string {
		out := make([]string, len(alarms))
		for i, a := range alarms {
			out[i] = a.ID
		}
		return out
	}

	want := []string{"tie-first", "tie-second", "late"}
	require.Equal(t, want, ids(s.Alarms()))
	require.Equal(t, want, ids(NewStore(prefs).Alarms()))
}

// TestAddRejectsInvalidAlarm verifies validation runs before any state
// change.
func TestAddRejectsInvalidAlarm(t *testing.T) {
	s := NewStore(test.NewApp().Preferences())

	bad := storeAlarm("a1", "25:00")
	require.Error(t, s.Add(bad))
	require.Empty(t, s.Alarms())
}

// TestSetEnabledPersists verifies the toggle survives a reload.
func TestSetEnabledPersists(t *testing.T) {
	prefs := test.NewApp().Preferences()
	s := NewStore(prefs)
	require.NoError(t, s.Add(storeAlarm("a1", "07:00")))

	s.SetEnabled("a1", false)

	got, ok := NewStore(prefs).Get("a1")
	require.True(t, ok)
	require.False(t, got.Enabled)
}

// TestRemovePersists verifies deletion survives a reload and that removing
// an unknown ID is harmless.
func TestRemovePersists(t *testing.T) {
	prefs := test.NewApp().Preferences()
	s := NewStore(prefs)
	require.NoError(t, s.Add(storeAlarm("a1", "07:00")))
	require.NoError(t, s.Add(storeAlarm("a2", "08:00")))

	s.Remove("a1")
	s.Remove("no-such-id")

	got := NewStore(prefs).Alarms()
	require.Len(t, got, 1)
	require.Equal(t, "a2", got[0].ID)
}

// TestAlarmsReturnsCopy verifies callers cannot mutate store state through
// the returned slice.
func TestAlarmsReturnsCopy(t *testing.T) {
	s := NewStore(test.NewApp().Preferences())
	require.NoError(t, s.Add(storeAlarm("a1", "07:00")))

	leaked := s.Alarms()
	leaked[0].Enabled = false

	got, _ := s.Get("a1")
	require.True(t, got.Enabled)
}

// TestAuthFlagRoundTrip verifies login persists and logout clears the
// stored key entirely.
func TestAuthFlagRoundTrip(t *testing.T) {
	prefs := test.NewApp().Preferences()
	s := NewStore(prefs)

	s.SetAuthenticated(true)
	require.True(t, NewStore(prefs).IsAuthenticated())

	s.SetAuthenticated(false)
	require.False(t, NewStore(prefs).IsAuthenticated())
	require.Equal(t, "unset", prefs.StringWithFallback("wakemind_auth", "unset"))
}
