package main

import (
	"fmt"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/wakemind/wakemind/pkg/audio"
	"github.com/wakemind/wakemind/pkg/models"
)

var soundOptions = []string{"Classic", "Gentle", "Siren", "Custom"}

func soundTypeFromOption(option string) models.SoundType {
	switch option {
	case "Gentle":
		return models.SoundGentle
	case "Siren":
		return models.SoundSiren
	case "Custom":
		return models.SoundCustom
	default:
		return models.SoundClassic
	}
}

// showAddAlarmDialog opens the new-alarm form. Nothing is stored until the
// form validates and the user confirms.
func (wm *WakeMind) showAddAlarmDialog(parent fyne.Window) {
	hourEntry := widget.NewEntry()
	hourEntry.SetText("07")
	minEntry := widget.NewEntry()
	minEntry.SetText("00")
	timeRow := container.NewHBox(hourEntry, widget.NewLabel(":"), minEntry)

	dayChecks := make([]*widget.Check, 7)
	dayRow := container.NewHBox()
	for i, label := range models.DayLabels {
		dayChecks[i] = widget.NewCheck(label, nil)
		dayRow.Add(dayChecks[i])
	}

	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("Morning Workout")

	challengeRadio := widget.NewRadioGroup([]string{"AI Typing", "Math"}, nil)
	challengeRadio.Horizontal = true
	challengeRadio.SetSelected("AI Typing")

	var customData []byte
	var customName string

	uploadLabel := widget.NewLabel("Upload Sound File (max 1.5MB)")
	uploadButton := widget.NewButton("Choose File...", func() {
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, parent)
				return
			}
			if rc == nil {
				return
			}
			defer rc.Close()

			// Reject oversize uploads before touching any state. Reading one
			// byte past the ceiling distinguishes "too big" from "at the
			// limit" without buffering an arbitrarily large file.
			data, err := io.ReadAll(io.LimitReader(rc, models.MaxCustomSoundBytes+1))
			if err != nil {
				dialog.ShowError(fmt.Errorf("failed to read sound file: %w", err), parent)
				return
			}
			if len(data) > models.MaxCustomSoundBytes {
				dialog.ShowError(fmt.Errorf("file is too large, please choose a file under 1.5MB"), parent)
				return
			}
			if err := audio.DecodeWAV(data); err != nil {
				dialog.ShowError(fmt.Errorf("unsupported sound file (WAV expected): %w", err), parent)
				return
			}

			customData = data
			customName = rc.URI().Name()
			uploadLabel.SetText(customName)
		}, parent)
	})
	uploadBox := container.NewHBox(uploadButton, uploadLabel)
	uploadBox.Hide()

	soundSelect := widget.NewSelect(soundOptions, func(option string) {
		if option == "Custom" {
			uploadBox.Show()
		} else {
			uploadBox.Hide()
		}
	})
	soundSelect.SetSelected("Classic")

	previewButton := widget.NewButton("Preview", func() {
		settings := models.SoundSettings{Type: soundTypeFromOption(soundSelect.Selected)}
		if settings.Type == models.SoundCustom {
			if customData == nil {
				return
			}
			settings.Data = customData
			settings.Name = customName
		}
		wm.player.Play(settings)
	})
	stopButton := widget.NewButton("Stop", func() {
		wm.player.Stop()
	})

	content := container.NewVBox(
		widget.NewLabel("Time (24h)"),
		timeRow,
		widget.NewLabel("Repeat (leave empty for a one-time alarm)"),
		dayRow,
		widget.NewLabel("Alarm Sound"),
		container.NewHBox(soundSelect, previewButton, stopButton),
		uploadBox,
		widget.NewLabel("Wake Up Challenge"),
		challengeRadio,
		widget.NewLabel("Label"),
		labelEntry,
	)

	dialog.ShowCustomConfirm("New Alarm", "Set Alarm", "Cancel", content, func(confirmed bool) {
		wm.player.Stop()
		if !confirmed {
			return
		}

		hours, mins := -1, -1
		fmt.Sscanf(hourEntry.Text, "%d", &hours)
		fmt.Sscanf(minEntry.Text, "%d", &mins)
		if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
			dialog.ShowError(fmt.Errorf("time must be between 00:00 and 23:59"), parent)
			return
		}

		days := []int{}
		for i, check := range dayChecks {
			if check.Checked {
				days = append(days, i)
			}
		}

		challengeType := models.ChallengeTyping
		if challengeRadio.Selected == "Math" {
			challengeType = models.ChallengeMath
		}

		sound := models.SoundSettings{Type: soundTypeFromOption(soundSelect.Selected)}
		if sound.Type == models.SoundCustom {
			if customData == nil {
				dialog.ShowError(fmt.Errorf("choose a sound file for the custom sound"), parent)
				return
			}
			sound.Data = customData
			sound.Name = customName
		}

		alarm := models.Alarm{
			ID:            uuid.New().String(),
			Time:          fmt.Sprintf("%02d:%02d", hours, mins),
			Label:         labelEntry.Text,
			Enabled:       true,
			ChallengeType: challengeType,
			Days:          days,
			Sound:         sound,
		}

		if err := wm.store.Add(alarm); err != nil {
			dialog.ShowError(err, parent)
			return
		}

		log.Printf("Alarm added: %s (%s)", alarm.Time, alarm.ID)
		wm.mainWindow.RefreshAlarms()
	}, parent)
}
