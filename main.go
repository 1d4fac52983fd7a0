package main

import (
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/wakemind/wakemind/pkg/audio"
	"github.com/wakemind/wakemind/pkg/challenge"
	"github.com/wakemind/wakemind/pkg/engine"
	"github.com/wakemind/wakemind/pkg/models"
	"github.com/wakemind/wakemind/pkg/store"
)

// WakeMind is the application root: it wires the alarm store, trigger
// engine, sound player and challenge provider together and drives the
// engine from a single 1-second ticker.
type WakeMind struct {
	app        fyne.App
	store      *store.Store
	engine     *engine.Engine
	player     *audio.Player
	mainWindow *MainWindow
	tickTicker *time.Ticker

	// mu guards the fields below: config and provider are replaced by
	// settings saves on a background goroutine, and alarmWindow is swapped
	// from the engine's onRing goroutine.
	mu          sync.Mutex
	config      *models.Config
	provider    *challenge.Provider
	alarmWindow *AlarmWindow
}

func main() {
	wm := &WakeMind{
		app: app.NewWithID("com.wakemind.app"),
	}

	wm.initialize()
	wm.run()
}

func (wm *WakeMind) initialize() {
	prefs := wm.app.Preferences()

	wm.config = store.LoadConfig(prefs)

	// Sync autostart state with config on startup
	if err := setupAutostart(wm.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	store.SaveConfig(prefs, wm.config)

	wm.store = store.NewStore(prefs)
	wm.player = audio.NewPlayer()
	wm.provider = challenge.NewProvider(
		challenge.NewPhraseGenerator(wm.config.PhraseAPIKey, wm.config.PhraseModel),
	)

	wm.engine = engine.New(wm.store, wm.player, func(alarm models.Alarm) {
		wm.showAlarmWindow(alarm)
	})

	wm.mainWindow = NewMainWindow(wm)
	wm.setupSystemTray()
	wm.startTriggerLoop()
}

func (wm *WakeMind) run() {
	wm.mainWindow.Show()
	wm.app.Run()
}

// startTriggerLoop drives the trigger engine once per second of wall-clock
// time. The same tick refreshes the on-screen clock.
func (wm *WakeMind) startTriggerLoop() {
	wm.tickTicker = time.NewTicker(1 * time.Second)
	go func() {
		for range wm.tickTicker.C {
			now := time.Now()
			wm.engine.Tick(now)
			wm.mainWindow.SetClock(now)
		}
	}()
}

// showAlarmWindow opens the full-screen ringing window. Called from the
// engine's onRing goroutine; the sound is already playing. A ring that
// arrives while an earlier ringing window is still up (a snooze expiring
// during another alarm) supersedes it: the stale window is closed so its
// challenge can never dismiss the newly ringing alarm.
func (wm *WakeMind) showAlarmWindow(alarm models.Alarm) {
	aw := NewAlarmWindow(wm, alarm)

	wm.mu.Lock()
	prev := wm.alarmWindow
	wm.alarmWindow = aw
	wm.mu.Unlock()

	if prev != nil {
		prev.Invalidate()
	}
	aw.Show()
}

// currentConfig returns the active configuration. Settings saves replace it
// from a background goroutine, so readers go through here.
func (wm *WakeMind) currentConfig() *models.Config {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.config
}

// challengeProvider returns the active challenge provider.
func (wm *WakeMind) challengeProvider() *challenge.Provider {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.provider
}

// applyConfig is called when settings are saved.
func (wm *WakeMind) applyConfig(newConfig *models.Config) {
	store.SaveConfig(wm.app.Preferences(), newConfig)
	provider := challenge.NewProvider(
		challenge.NewPhraseGenerator(newConfig.PhraseAPIKey, newConfig.PhraseModel),
	)

	wm.mu.Lock()
	wm.config = newConfig
	wm.provider = provider
	wm.mu.Unlock()
}

func (wm *WakeMind) quit() {
	if wm.tickTicker != nil {
		wm.tickTicker.Stop()
	}
	wm.player.Stop()
	wm.app.Quit()
}
