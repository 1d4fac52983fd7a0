package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/wakemind/wakemind/pkg/models"
)

// MainWindow is the app's primary window: digital clock, snooze banner and
// the alarm list. When the user is not logged in it shows the landing view
// instead.
type MainWindow struct {
	wm     *WakeMind
	window fyne.Window

	clockText    *canvas.Text
	dateLabel    *widget.Label
	snoozeBanner *fyne.Container
	snoozeLabel  *widget.Label
	alarmList    *fyne.Container
	emptyHint    *widget.Label
}

func NewMainWindow(wm *WakeMind) *MainWindow {
	mw := &MainWindow{wm: wm}

	mw.window = wm.app.NewWindow("WakeMind")
	mw.window.Resize(fyne.NewSize(480, 640))
	mw.window.CenterOnScreen()
	mw.window.SetMaster()

	if wm.store.IsAuthenticated() {
		mw.showAlarmsView()
	} else {
		mw.showLandingView()
	}

	return mw
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}

// showAlarmsView builds the logged-in content: header, clock, snooze
// banner, alarm list and the add button.
func (mw *MainWindow) showAlarmsView() {
	title := canvas.NewText("WakeMind", theme.PrimaryColor())
	title.TextSize = 24
	title.TextStyle = fyne.TextStyle{Bold: true}
	subtitle := widget.NewLabel("Smart Wake Up")

	logoutButton := widget.NewButtonWithIcon("", theme.LogoutIcon(), func() {
		mw.wm.store.SetAuthenticated(false)
		mw.showLandingView()
	})

	header := container.NewBorder(nil, nil,
		container.NewVBox(title, subtitle),
		logoutButton,
	)

	mw.clockText = canvas.NewText(time.Now().Format("15:04:05"), theme.ForegroundColor())
	mw.clockText.TextSize = 56
	mw.clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mw.clockText.Alignment = fyne.TextAlignCenter

	mw.dateLabel = widget.NewLabel(time.Now().Format("Monday, January 2"))
	mw.dateLabel.Alignment = fyne.TextAlignCenter

	mw.snoozeLabel = widget.NewLabel("")
	cancelSnooze := widget.NewButton("Cancel", func() {
		mw.wm.engine.CancelSnooze()
		mw.RefreshSnoozeBanner()
	})
	mw.snoozeBanner = container.NewBorder(nil, nil, nil, cancelSnooze, mw.snoozeLabel)
	mw.snoozeBanner.Hide()

	mw.emptyHint = widget.NewLabel("No alarms set. Tap + to add one.")
	mw.emptyHint.Alignment = fyne.TextAlignCenter

	mw.alarmList = container.NewVBox()

	addButton := widget.NewButtonWithIcon("New Alarm", theme.ContentAddIcon(), func() {
		mw.wm.showAddAlarmDialog(mw.window)
	})
	addButton.Importance = widget.HighImportance

	content := container.NewBorder(
		container.NewVBox(
			container.NewPadded(header),
			mw.clockText,
			mw.dateLabel,
			container.NewPadded(mw.snoozeBanner),
			widget.NewSeparator(),
		),
		container.NewPadded(addButton),
		nil,
		nil,
		container.NewVScroll(container.NewPadded(container.NewVBox(mw.emptyHint, mw.alarmList))),
	)

	mw.window.SetContent(content)
	mw.RefreshAlarms()
	mw.RefreshSnoozeBanner()
}

// SetClock updates the on-screen clock. Safe to call from the tick
// goroutine.
func (mw *MainWindow) SetClock(now time.Time) {
	fyne.Do(func() {
		if mw.clockText == nil {
			return
		}
		mw.clockText.Text = now.Format("15:04:05")
		mw.clockText.Refresh()
		mw.dateLabel.SetText(now.Format("Monday, January 2"))
	})
}

// RefreshSnoozeBanner shows or hides the snooze indicator. Must run on the
// UI thread.
func (mw *MainWindow) RefreshSnoozeBanner() {
	if mw.snoozeBanner == nil {
		return
	}
	if snooze, ok := mw.wm.engine.Snoozed(); ok {
		mw.snoozeLabel.SetText(fmt.Sprintf("Snoozing, rings at %s", snooze.WakeAt.Format("15:04")))
		mw.snoozeBanner.Show()
	} else {
		mw.snoozeBanner.Hide()
	}
}

// RefreshAlarms rebuilds the alarm list from the store. Must run on the UI
// thread.
func (mw *MainWindow) RefreshAlarms() {
	if mw.alarmList == nil {
		return
	}

	mw.alarmList.RemoveAll()
	alarms := mw.wm.store.Alarms()

	if len(alarms) == 0 {
		mw.emptyHint.Show()
	} else {
		mw.emptyHint.Hide()
	}

	for _, alarm := range alarms {
		mw.alarmList.Add(mw.buildAlarmRow(alarm))
	}
	mw.alarmList.Refresh()

	mw.wm.updateSystemTrayMenu()
}

func (mw *MainWindow) buildAlarmRow(alarm models.Alarm) fyne.CanvasObject {
	timeText := canvas.NewText(alarm.Time, theme.ForegroundColor())
	timeText.TextSize = 28
	timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	if !alarm.Enabled {
		timeText.Color = theme.DisabledColor()
	}

	detail := alarm.DaysSummary()
	if alarm.Label != "" {
		detail = alarm.Label + "  -  " + detail
	}
	if alarm.Sound.Type == models.SoundCustom && alarm.Sound.Name != "" {
		detail += "  -  " + alarm.Sound.Name
	}
	detailLabel := widget.NewLabel(detail)

	id := alarm.ID
	enabledCheck := widget.NewCheck("", nil)
	enabledCheck.SetChecked(alarm.Enabled)
	// Set after SetChecked so restoring the stored state does not fire a
	// toggle.
	enabledCheck.OnChanged = func(bool) {
		mw.wm.engine.Toggle(id)
		mw.RefreshAlarms()
	}

	deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Delete Alarm",
			fmt.Sprintf("Delete the %s alarm?", alarm.Time),
			func(confirmed bool) {
				if !confirmed {
					return
				}
				mw.wm.engine.Delete(id)
				mw.RefreshAlarms()
				mw.RefreshSnoozeBanner()
			}, mw.window)
	})

	row := container.NewBorder(nil, widget.NewSeparator(),
		timeText,
		container.NewHBox(enabledCheck, deleteButton),
		detailLabel,
	)
	return row
}
