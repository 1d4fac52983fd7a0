package models

// Config holds application configuration
type Config struct {
	AutoStart       bool   `json:"auto_start"`        // launch at login
	HoldTimeSeconds int    `json:"hold_time_seconds"` // snooze button hold time
	PhraseAPIKey    string `json:"phrase_api_key"`    // typing-challenge API key, empty = fallback phrase
	PhraseModel     string `json:"phrase_model"`      // typing-challenge model name
}
