package engine

import (
	"log"
	"sync"
	"time"

	"github.com/wakemind/wakemind/pkg/models"
)

// SnoozeDuration is the fixed deferral applied when a ringing alarm is
// snoozed.
const SnoozeDuration = 5 * time.Minute

// SoundPlayer starts and stops alarm audio. At most one sound plays at a
// time; Play replaces the current sound and Stop is idempotent.
type SoundPlayer interface {
	Play(models.SoundSettings)
	Stop()
}

// AlarmStore is the engine's view of the persisted alarm list.
type AlarmStore interface {
	Alarms() []models.Alarm
	Get(id string) (models.Alarm, bool)
	SetEnabled(id string, enabled bool)
	Remove(id string)
}

// Snooze tracks the single snoozed alarm and when it fires again.
type Snooze struct {
	Alarm  models.Alarm
	WakeAt time.Time
}

// Engine evaluates alarms once per second against wall-clock time. It owns
// the "one ringing alarm at a time" invariant and the snooze state. The
// caller drives it via Tick; the engine itself never blocks on I/O.
type Engine struct {
	mu     sync.Mutex
	store  AlarmStore
	sound  SoundPlayer
	onRing func(models.Alarm)

	ringing *models.Alarm
	snooze  *Snooze
}

// New creates an engine. onRing is invoked (on its own goroutine) each time
// an alarm transitions to ringing, after the sound has started.
func New(store AlarmStore, sound SoundPlayer, onRing func(models.Alarm)) *Engine {
	return &Engine{
		store:  store,
		sound:  sound,
		onRing: onRing,
	}
}

// Tick evaluates one clock tick. Ordering is fixed: an expired snooze fires
// immediately, even while another alarm is ringing, and replaces it as the
// one tracked ringing alarm (the replaced alarm is superseded, not
// dismissed); while an alarm is ringing no matching happens at all;
// otherwise enabled alarms are scanned in stored order and the first match
// at second 0 of its minute fires.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()

	if e.snooze != nil && !now.Before(e.snooze.WakeAt) {
		alarm := e.snooze.Alarm
		e.snooze = nil
		e.fireLocked(alarm)
		e.mu.Unlock()
		return
	}

	if e.ringing != nil {
		e.mu.Unlock()
		return
	}

	// Alarms match exactly once, at second 0 of their minute.
	if now.Second() != 0 {
		e.mu.Unlock()
		return
	}

	for _, alarm := range e.store.Alarms() {
		if !alarm.Enabled {
			continue
		}
		if alarm.MatchesClock(now) {
			// First match wins; anything else matching this tick is
			// suppressed until the engine is free again.
			e.fireLocked(alarm)
			break
		}
	}

	e.mu.Unlock()
}

// fireLocked transitions an alarm to ringing. Caller holds e.mu.
func (e *Engine) fireLocked(alarm models.Alarm) {
	e.ringing = &alarm
	e.sound.Play(alarm.Sound)
	log.Printf("Alarm ringing: %s (%s)", alarm.Time, alarm.ID)

	if e.onRing != nil {
		go e.onRing(alarm)
	}
}

// Ringing returns the currently ringing alarm, if any.
func (e *Engine) Ringing() (models.Alarm, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ringing == nil {
		return models.Alarm{}, false
	}
	return *e.ringing, true
}

// Snoozed returns the current snooze state, if any.
func (e *Engine) Snoozed() (Snooze, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snooze == nil {
		return Snooze{}, false
	}
	return *e.snooze, true
}

// Dismiss ends the ringing alarm. The caller is responsible for having
// verified the wake-up challenge first. A one-time alarm is disabled so it
// never fires again; repeating alarms are left untouched.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ringing == nil {
		return
	}

	e.sound.Stop()
	if e.ringing.IsOneTime() {
		e.store.SetEnabled(e.ringing.ID, false)
	}
	log.Printf("Alarm dismissed: %s", e.ringing.ID)
	e.ringing = nil
}

// SnoozeRinging defers the ringing alarm by the fixed snooze window. It does
// not alter the alarm's enabled flag or repeat days.
func (e *Engine) SnoozeRinging(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ringing == nil {
		return
	}

	e.sound.Stop()
	e.snooze = &Snooze{
		Alarm:  *e.ringing,
		WakeAt: now.Add(SnoozeDuration),
	}
	log.Printf("Alarm snoozed until %s: %s", e.snooze.WakeAt.Format("15:04:05"), e.ringing.ID)
	e.ringing = nil
}

// CancelSnooze clears the snooze state without re-arming or firing.
func (e *Engine) CancelSnooze() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.snooze = nil
}

// Toggle flips an alarm's enabled flag. Ringing and snoozed state are
// tracked independently and are not affected.
func (e *Engine) Toggle(id string) {
	alarm, ok := e.store.Get(id)
	if !ok {
		return
	}
	e.store.SetEnabled(id, !alarm.Enabled)
}

// Delete removes an alarm. If the deleted alarm is the one currently
// snoozed, the snooze is cancelled too so a dangling reference can never
// fire.
func (e *Engine) Delete(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Remove(id)
	if e.snooze != nil && e.snooze.Alarm.ID == id {
		e.snooze = nil
	}
}
