package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// showLandingView swaps the main window content to the login gate. The
// "account" here is just a persisted boolean flag; there is no credential
// check behind it.
func (mw *MainWindow) showLandingView() {
	title := canvas.NewText("WakeMind", theme.PrimaryColor())
	title.TextSize = 40
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	tagline := widget.NewLabel("The alarm clock that makes sure you are actually awake.")
	tagline.Alignment = fyne.TextAlignCenter
	tagline.Wrapping = fyne.TextWrapWord

	features := widget.NewLabel(
		"- Solve a math problem or type a phrase to dismiss\n" +
			"- Repeat-day schedules and one-time alarms\n" +
			"- Classic, gentle, siren or custom sounds")
	features.Alignment = fyne.TextAlignCenter

	loginButton := widget.NewButton("Get Started", func() {
		mw.wm.store.SetAuthenticated(true)
		mw.showAlarmsView()
	})
	loginButton.Importance = widget.HighImportance

	mw.clockText = nil
	mw.snoozeBanner = nil
	mw.alarmList = nil

	mw.window.SetContent(container.NewCenter(container.NewVBox(
		title,
		tagline,
		features,
		container.NewPadded(loginButton),
	)))
}
