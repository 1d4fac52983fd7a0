package main

import (
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func (wm *WakeMind) setupSystemTray() {
	wm.updateSystemTrayMenu()
}

func (wm *WakeMind) updateSystemTrayMenu() {
	desk, ok := wm.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Upcoming alarms section at the top
	upcoming := wm.upcomingAlarms(5)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, entry := range upcoming {
			item := fyne.NewMenuItem(entry, nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show WakeMind", func() {
			wm.mainWindow.Show()
		}),
		fyne.NewMenuItem("Settings", func() {
			NewSettingsWindow(wm).Show()
		}),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
		wm.quit()
	}))

	menu := fyne.NewMenu("WakeMind", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

// upcomingAlarms renders the next few enabled alarms (and a pending snooze)
// in firing order for the tray menu.
func (wm *WakeMind) upcomingAlarms(limit int) []string {
	now := time.Now()

	type upcoming struct {
		at    time.Time
		label string
	}
	entries := []upcoming{}

	if snooze, ok := wm.engine.Snoozed(); ok {
		entries = append(entries, upcoming{
			at:    snooze.WakeAt,
			label: fmt.Sprintf("  %s - snoozed %s alarm", snooze.WakeAt.Format("15:04"), snooze.Alarm.Time),
		})
	}

	for _, alarm := range wm.store.Alarms() {
		if !alarm.Enabled {
			continue
		}
		next, err := alarm.NextRing(now)
		if err != nil {
			continue
		}
		label := alarm.Label
		if label == "" {
			label = alarm.DaysSummary()
		}
		entries = append(entries, upcoming{
			at:    next,
			label: fmt.Sprintf("  %s - %s", next.Format("Mon 15:04"), truncateString(label, 35)),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.Before(entries[j].at)
	})

	out := []string{}
	for _, e := range entries {
		out = append(out, e.label)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
