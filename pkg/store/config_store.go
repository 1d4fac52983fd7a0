package store

import (
	"fyne.io/fyne/v2"

	"github.com/wakemind/wakemind/pkg/models"
)

// LoadConfig loads application configuration from preferences, applying
// defaults for anything unset.
func LoadConfig(prefs fyne.Preferences) *models.Config {
	return &models.Config{
		AutoStart:       prefs.BoolWithFallback("auto_start", false),
		HoldTimeSeconds: prefs.IntWithFallback("hold_time_seconds", 3),
		PhraseAPIKey:    prefs.String("phrase_api_key"),
		PhraseModel:     prefs.StringWithFallback("phrase_model", "gpt-4o-mini"),
	}
}

// SaveConfig saves application configuration to preferences.
func SaveConfig(prefs fyne.Preferences, config *models.Config) {
	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
	prefs.SetString("phrase_api_key", config.PhraseAPIKey)
	prefs.SetString("phrase_model", config.PhraseModel)
}
