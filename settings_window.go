package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/wakemind/wakemind/pkg/models"
)

// SettingsWindow edits application configuration: launch at login, the
// snooze-button hold time, and the typing-challenge phrase service.
type SettingsWindow struct {
	window fyne.Window
	wm     *WakeMind

	autoStartCheck  *widget.Check
	holdTimeSelect  *widget.Select
	apiKeyEntry     *widget.Entry
	modelEntry      *widget.Entry
	saveStatusLabel *widget.Label
}

func NewSettingsWindow(wm *WakeMind) *SettingsWindow {
	sw := &SettingsWindow{
		wm:     wm,
		window: wm.app.NewWindow("WakeMind - Settings"),
	}
	sw.buildUI()
	return sw
}

func (sw *SettingsWindow) buildUI() {
	config := sw.wm.currentConfig()

	sw.autoStartCheck = widget.NewCheck("Launch WakeMind at login", nil)
	sw.autoStartCheck.SetChecked(config.AutoStart)

	sw.holdTimeSelect = widget.NewSelect([]string{"1 sec", "2 sec", "3 sec", "5 sec"}, nil)
	sw.holdTimeSelect.SetSelected(fmt.Sprintf("%d sec", config.HoldTimeSeconds))

	sw.apiKeyEntry = widget.NewPasswordEntry()
	sw.apiKeyEntry.SetText(config.PhraseAPIKey)
	sw.apiKeyEntry.SetPlaceHolder("Leave empty to use the built-in phrase")

	sw.modelEntry = widget.NewEntry()
	sw.modelEntry.SetText(config.PhraseModel)

	form := widget.NewForm(
		widget.NewFormItem("Autostart", sw.autoStartCheck),
		widget.NewFormItem("Snooze hold time", sw.holdTimeSelect),
		widget.NewFormItem("Phrase API key", sw.apiKeyEntry),
		widget.NewFormItem("Phrase model", sw.modelEntry),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	saveButton := widget.NewButton("Save", func() {
		sw.handleSave()
	})
	saveButton.Importance = widget.HighImportance

	closeButton := widget.NewButton("Close", func() {
		sw.window.Close()
	})

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(saveButton, sw.saveStatusLabel),
		closeButton,
	)

	sw.window.SetContent(container.NewBorder(nil, container.NewPadded(buttonRow), nil, nil, container.NewPadded(form)))
	sw.window.Resize(fyne.NewSize(480, 320))
	sw.window.CenterOnScreen()
}

func (sw *SettingsWindow) handleSave() {
	holdSeconds := 3
	if _, err := fmt.Sscanf(sw.holdTimeSelect.Selected, "%d sec", &holdSeconds); err != nil {
		holdSeconds = 3
	}

	newConfig := &models.Config{
		AutoStart:       sw.autoStartCheck.Checked,
		HoldTimeSeconds: holdSeconds,
		PhraseAPIKey:    sw.apiKeyEntry.Text,
		PhraseModel:     sw.modelEntry.Text,
	}

	sw.saveStatusLabel.SetText("Saving...")
	go func() {
		if err := setupAutostart(newConfig.AutoStart); err != nil {
			log.Printf("Error setting autostart: %v", err)
			fyne.Do(func() {
				sw.saveStatusLabel.SetText("Error: failed to set autostart")
				sw.saveStatusLabel.Importance = widget.DangerImportance
				sw.saveStatusLabel.Refresh()
			})
			return
		}

		sw.wm.applyConfig(newConfig)

		fyne.Do(func() {
			sw.saveStatusLabel.SetText("Settings saved")
			sw.saveStatusLabel.Importance = widget.SuccessImportance
			sw.saveStatusLabel.Refresh()
		})
	}()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}
