package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config after parsing.
type JSONConfig struct {
	DatabasePath         string `json:"database_path"`
	SessionFile          string `json:"session_file"`
	SecretKey            string `json:"secret_key"`
	SessionValidityHours int    `json:"session_validity_hours"`
	DateFormat           string `json:"date_format"`
}

// parseJSON overlays Config with values loaded from a JSON file named via
// the -c/-config flags. When no file is named the overlay is skipped.
// Read or unmarshal errors panic; there is no sane way to continue with a
// half-read config.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.SessionValidityHours > 0 {
		cfg.SessionValidityDuration = time.Duration(jc.SessionValidityHours) * time.Hour
	}
	if jc.DateFormat != "" {
		cfg.DateFormat = jc.DateFormat
	}
}
