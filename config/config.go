// Package config resolves planner defaults from the environment and
// shift-window definitions from YAML files. Flags override everything.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"shift-planner/models"
	"shift-planner/staffing"
)

// Defaults are the planner tunables resolvable from the environment.
type Defaults struct {
	SalesCapacity float64
	TxnCapacity   float64
	FixedStaff    int
	Budget        int
	ForecastDays  int
	Seed          int64
}

// LoadDefaults reads planner defaults from environment variables, loading
// a .env file first if one exists. Unset variables fall back to the
// store's standard tuning.
func LoadDefaults() Defaults {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	return Defaults{
		SalesCapacity: getEnvFloat("PLANNER_SALES_CAPACITY", 75),
		TxnCapacity:   getEnvFloat("PLANNER_TXN_CAPACITY", 20),
		FixedStaff:    getEnvInt("PLANNER_FIXED_STAFF", 1),
		Budget:        getEnvInt("PLANNER_STAFF_HOUR_BUDGET", 0),
		ForecastDays:  getEnvInt("PLANNER_FORECAST_DAYS", 7),
		Seed:          int64(getEnvInt("PLANNER_SEED", 42)),
	}
}

// shiftFile is the YAML shape of a shift-window definition file:
//
//	shifts:
//	  - label: Morning
//	    start: 8
//	    end: 12
type shiftFile struct {
	Shifts []models.ShiftWindow `yaml:"shifts"`
}

// LoadShiftWindows reads shift windows from a YAML file. An empty path
// returns the default Morning/Midday/Closing split.
func LoadShiftWindows(path string) ([]models.ShiftWindow, error) {
	if path == "" {
		return staffing.DefaultShiftWindows, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading shift file: %w", err)
	}
	var f shiftFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("error parsing shift file: %w", err)
	}
	if len(f.Shifts) == 0 {
		return nil, fmt.Errorf("shift file %s defines no shifts", path)
	}
	for _, w := range f.Shifts {
		if w.Label == "" {
			return nil, fmt.Errorf("shift file %s: shift with empty label", path)
		}
		if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
			return nil, fmt.Errorf("shift file %s: shift %q has invalid hours [%d, %d)",
				path, w.Label, w.StartHour, w.EndHour)
		}
	}
	return f.Shifts, nil
}

// getEnvFloat returns the environment variable as a float or the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
