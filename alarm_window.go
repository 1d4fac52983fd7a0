package main

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/hotkey"

	"github.com/wakemind/wakemind/pkg/challenge"
	"github.com/wakemind/wakemind/pkg/models"
	"github.com/wakemind/wakemind/pkg/platform"
	"github.com/wakemind/wakemind/pkg/ui/components"
)

// AlarmWindow is the full-screen ringing screen. The alarm sound is already
// playing when it opens; the only ways out are a correct challenge answer
// or holding the snooze button.
type AlarmWindow struct {
	wm    *WakeMind
	alarm models.Alarm

	window         fyne.Window
	questionText   *canvas.Text
	promptLabel    *widget.Label
	errorLabel     *widget.Label
	input          *widget.Entry
	dismissButton  *widget.Button
	challenge      challenge.Challenge
	challengeReady bool

	cmdQHotkey     *hotkey.Hotkey
	stopMonitoring chan struct{}
	closed         bool
}

func NewAlarmWindow(wm *WakeMind, alarm models.Alarm) *AlarmWindow {
	aw := &AlarmWindow{
		wm:             wm,
		alarm:          alarm,
		stopMonitoring: make(chan struct{}),
	}

	// Create window and build UI on the main Fyne thread
	fyne.Do(func() {
		aw.window = wm.app.NewWindow("Wake Up!")
		aw.window.SetFullScreen(true)
		aw.buildUI()

		// The challenge is the only exit; ignore close attempts
		aw.window.SetCloseIntercept(func() {})

		// Block Cmd+Q while ringing so the challenge cannot be skipped
		aw.registerCmdQPrevention()

		// Keep the ringing window in front until it is resolved
		aw.setupFocusMonitoring()

		aw.window.SetOnClosed(func() {
			close(aw.stopMonitoring)
			if aw.cmdQHotkey != nil {
				aw.cmdQHotkey.Unregister()
			}
		})
	})

	// Challenge content streams in while the alarm is already ringing
	go aw.prepareChallenge()

	return aw
}

func (aw *AlarmWindow) buildUI() {
	timeText := canvas.NewText(aw.alarm.Time, theme.ForegroundColor())
	timeText.TextSize = 96
	timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeText.Alignment = fyne.TextAlignCenter

	wakeText := canvas.NewText("WAKE UP!", theme.ErrorColor())
	wakeText.TextSize = 28
	wakeText.TextStyle = fyne.TextStyle{Bold: true}
	wakeText.Alignment = fyne.TextAlignCenter

	aw.promptLabel = widget.NewLabel("Preparing challenge...")
	aw.promptLabel.Alignment = fyne.TextAlignCenter

	aw.questionText = canvas.NewText("", theme.ForegroundColor())
	aw.questionText.TextSize = 32
	aw.questionText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	aw.questionText.Alignment = fyne.TextAlignCenter

	aw.errorLabel = widget.NewLabel("Wrong answer, try again")
	aw.errorLabel.Importance = widget.DangerImportance
	aw.errorLabel.Alignment = fyne.TextAlignCenter
	aw.errorLabel.Hide()

	aw.input = widget.NewEntry()
	aw.input.SetPlaceHolder("Type your answer...")
	aw.input.OnSubmitted = func(string) { aw.handleSubmit() }
	aw.input.Disable()

	aw.dismissButton = widget.NewButtonWithIcon("Dismiss Alarm", theme.VolumeMuteIcon(), aw.handleSubmit)
	aw.dismissButton.Importance = widget.HighImportance
	aw.dismissButton.Disable()

	snoozeButton := components.NewHoldButton(
		"Snooze 5 min (hold)",
		time.Duration(aw.wm.currentConfig().HoldTimeSeconds)*time.Second,
		func() { aw.handleSnooze() },
	)

	content := container.NewVBox(
		timeText,
		wakeText,
		widget.NewSeparator(),
		aw.promptLabel,
		container.NewPadded(aw.questionText),
		aw.input,
		aw.errorLabel,
		aw.dismissButton,
		widget.NewSeparator(),
		container.NewCenter(snoozeButton),
	)

	if aw.alarm.Label != "" {
		label := widget.NewLabel("\"" + aw.alarm.Label + "\"")
		label.Alignment = fyne.TextAlignCenter
		content.Add(label)
	}

	aw.window.SetContent(container.NewCenter(content))
}

// prepareChallenge fetches the challenge off the UI thread. Firing already
// happened; until this returns the window shows a loading state.
func (aw *AlarmWindow) prepareChallenge() {
	ch := aw.wm.challengeProvider().Prepare(context.Background(), aw.alarm.ChallengeType)

	fyne.Do(func() {
		if aw.closed {
			// Dismissed or snoozed by other means; discard the result
			return
		}

		aw.challenge = ch
		aw.challengeReady = true

		if ch.Type == models.ChallengeTyping {
			aw.promptLabel.SetText("Type the exact phrase below")
			aw.questionText.Text = ch.Phrase
		} else {
			aw.promptLabel.SetText("Solve this calculation")
			aw.questionText.Text = ch.Question
		}
		aw.questionText.Refresh()

		aw.input.Enable()
		aw.dismissButton.Enable()
		aw.window.Canvas().Focus(aw.input)
	})
}

// handleSubmit verifies the answer. A wrong answer clears the input and
// flashes an error; the alarm keeps ringing until a correct answer or a
// snooze.
func (aw *AlarmWindow) handleSubmit() {
	if aw.closed || !aw.challengeReady {
		return
	}

	if !aw.challenge.Verify(aw.input.Text) {
		aw.input.SetText("")
		aw.errorLabel.Show()
		go func() {
			time.Sleep(1500 * time.Millisecond)
			fyne.Do(func() {
				aw.errorLabel.Hide()
			})
		}()
		return
	}

	aw.wm.engine.Dismiss()
	aw.closeWindow()
}

func (aw *AlarmWindow) handleSnooze() {
	fyne.Do(func() {
		if aw.closed {
			return
		}
		aw.wm.engine.SnoozeRinging(time.Now())
		aw.closeWindow()
	})
}

// Invalidate closes the window without touching the engine. Used when a
// newer ringing alarm supersedes this one, so the stale challenge cannot
// dismiss or snooze an alarm it no longer represents.
func (aw *AlarmWindow) Invalidate() {
	fyne.Do(func() {
		if aw.closed {
			return
		}
		aw.closed = true
		aw.window.Close()
	})
}

// closeWindow tears the ringing screen down and refreshes the main window,
// which may have changed (one-time alarms disable on dismissal, snoozing
// shows the banner). Must run on the UI thread.
func (aw *AlarmWindow) closeWindow() {
	if aw.closed {
		return
	}
	aw.closed = true
	aw.window.Close()

	aw.wm.mainWindow.RefreshAlarms()
	aw.wm.mainWindow.RefreshSnoozeBanner()
}

func (aw *AlarmWindow) Show() {
	fyne.Do(func() {
		if aw.window != nil {
			aw.window.Show()
			aw.window.RequestFocus()
		}
	})
}

func (aw *AlarmWindow) registerCmdQPrevention() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{modCmd}, hotkey.KeyQ)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register Cmd+Q hotkey prevention: %v", err)
			return
		}
		aw.cmdQHotkey = hk

		// Consume Cmd+Q events and prevent default quit behavior
		for range hk.Keydown() {
			log.Println("Cmd+Q blocked - solve the challenge to dismiss the alarm")
		}
	}()
}

func (aw *AlarmWindow) setupFocusMonitoring() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-aw.stopMonitoring:
				return
			case <-ticker.C:
				if aw.window == nil {
					return
				}

				// If the app is not focused, bring the ringing window back
				if !platform.IsAppActive() {
					platform.ActivateApp()
					fyne.Do(func() {
						if aw.window != nil && !aw.closed {
							aw.window.Show()
						}
					})
				}
			}
		}
	}()
}
