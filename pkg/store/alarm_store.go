package store

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/wakemind/wakemind/pkg/models"
)

const (
	alarmsKey = "wakemind_alarms"
	authKey   = "wakemind_auth"
)

// Store owns the persisted alarm list. Alarms are kept in memory as the
// source of truth, ordered ascending by time-of-day with insertion order as
// the tie-break, and written back to Fyne preferences after every mutation.
type Store struct {
	mu    sync.RWMutex
	prefs fyne.Preferences

	alarms []models.Alarm
	// arrival remembers insertion sequence per alarm ID so that re-sorting
	// stays stable across save/load cycles.
	arrival map[string]int
	nextSeq int
}

// NewStore loads the persisted alarm list. Missing or corrupt data is logged
// and treated as an empty list, never an error.
func NewStore(prefs fyne.Preferences) *Store {
	s := &Store{
		prefs:   prefs,
		arrival: make(map[string]int),
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw := s.prefs.String(alarmsKey)
	if raw == "" {
		return
	}

	var alarms []models.Alarm
	if err := json.Unmarshal([]byte(raw), &alarms); err != nil {
		log.Printf("Failed to parse stored alarms, starting empty: %v", err)
		return
	}

	// Migration for alarms persisted before sound selection existed.
	for i := range alarms {
		if alarms[i].Sound.Type == "" {
			alarms[i].Sound = models.SoundSettings{Type: models.SoundClassic}
		}
	}

	s.alarms = alarms
	for i, a := range alarms {
		s.arrival[a.ID] = i
	}
	s.nextSeq = len(alarms)
}

// save persists the full current set. Called after every mutation so the
// in-memory list and the stored list never diverge.
func (s *Store) save() {
	data, err := json.Marshal(s.alarms)
	if err != nil {
		log.Printf("Failed to encode alarms: %v", err)
		return
	}
	s.prefs.SetString(alarmsKey, string(data))
}

// sortLocked orders alarms ascending by time-of-day. Equal times keep their
// insertion order.
func (s *Store) sortLocked() {
	sort.SliceStable(s.alarms, func(i, j int) bool {
		if s.alarms[i].Time != s.alarms[j].Time {
			return s.alarms[i].Time < s.alarms[j].Time
		}
		return s.arrival[s.alarms[i].ID] < s.arrival[s.alarms[j].ID]
	})
}

// Alarms returns a copy of the current alarm list in display/scan order.
func (s *Store) Alarms() []models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alarm, len(s.alarms))
	copy(out, s.alarms)
	return out
}

// Get returns the alarm with the given ID.
func (s *Store) Get(id string) (models.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.alarms {
		if a.ID == id {
			return a, true
		}
	}
	return models.Alarm{}, false
}

// Add validates and inserts a new alarm, keeping the list sorted.
func (s *Store) Add(alarm models.Alarm) error {
	if err := alarm.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.arrival[alarm.ID] = s.nextSeq
	s.nextSeq++
	s.alarms = append(s.alarms, alarm)
	s.sortLocked()
	s.save()
	return nil
}

// Remove deletes the alarm with the given ID. Removing an unknown ID is a
// no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.alarms {
		if a.ID == id {
			s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)
			delete(s.arrival, id)
			s.save()
			return
		}
	}
}

// SetEnabled flips the enabled flag of one alarm and persists the change.
func (s *Store) SetEnabled(id string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alarms {
		if s.alarms[i].ID == id {
			s.alarms[i].Enabled = enabled
			s.save()
			return
		}
	}
}

// IsAuthenticated reports the persisted auth flag.
func (s *Store) IsAuthenticated() bool {
	return s.prefs.Bool(authKey)
}

// SetAuthenticated records login state. Logging out removes the key rather
// than storing false, matching the app's original storage shape.
func (s *Store) SetAuthenticated(ok bool) {
	if ok {
		s.prefs.SetBool(authKey, true)
		return
	}
	s.prefs.RemoveValue(authKey)
}
