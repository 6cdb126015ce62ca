package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MinTickInterval bounds the UI refresh cadence at 20 Hz.
const MinTickInterval = 50 * time.Millisecond

const DefaultTickInterval = 250 * time.Millisecond

// Defaults seeds the meeting parameters when the widget starts. Values are
// coerced by the meter domain exactly like user edits.
type Defaults struct {
	OnsitePeople        float64
	RemotePeople        float64
	RoomAreaM2          float64
	CeilingHeightM      float64
	HourlyCostPerPerson float64
	Currency            string
	O2ConsumptionLpm    float64
}

type Config struct {
	StateDir     string
	DBPath       string
	ReportDir    string
	LogPath      string
	LogLevel     string
	TickInterval time.Duration
	StatusAddr   string
	Defaults     Defaults
}

type fileConfig struct {
	StateDir     string       `yaml:"state_dir"`
	ReportDir    string       `yaml:"report_dir"`
	LogLevel     string       `yaml:"log_level"`
	TickInterval string       `yaml:"tick_interval"`
	StatusAddr   string       `yaml:"status_addr"`
	Defaults     fileDefaults `yaml:"defaults"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		OnsitePeople:        4,
		RemotePeople:        2,
		RoomAreaM2:          30,
		CeilingHeightM:      3,
		HourlyCostPerPerson: 80,
		Currency:            "USD",
		O2ConsumptionLpm:    0.6,
	}
}

// Load resolves configuration from built-in defaults, the YAML file at path
// (or the XDG location when path is empty) and AIRTIME_* environment variables.
func Load(path string) (Config, error) {
	cfg := Config{
		StateDir:     defaultStateDir(),
		LogLevel:     "info",
		TickInterval: DefaultTickInterval,
		Defaults:     DefaultDefaults(),
	}

	explicit := path != ""
	if !explicit {
		path = configFilePath()
	}
	if path != "" {
		if err := applyFile(&cfg, path, explicit); err != nil {
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)

	if cfg.StateDir == "" {
		return Config{}, fmt.Errorf("state dir is required")
	}
	cfg.StateDir = expandTilde(cfg.StateDir)
	if cfg.ReportDir == "" {
		cfg.ReportDir = filepath.Join(cfg.StateDir, "reports")
	}
	cfg.ReportDir = expandTilde(cfg.ReportDir)
	cfg.DBPath = filepath.Join(cfg.StateDir, "airtime.db")
	cfg.LogPath = filepath.Join(cfg.StateDir, "airtime.log")
	if cfg.TickInterval < MinTickInterval {
		cfg.TickInterval = MinTickInterval
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string, explicit bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if fc.StateDir != "" {
		cfg.StateDir = fc.StateDir
	}
	if fc.ReportDir != "" {
		cfg.ReportDir = fc.ReportDir
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.StatusAddr != "" {
		cfg.StatusAddr = fc.StatusAddr
	}
	if fc.TickInterval != "" {
		d, err := time.ParseDuration(fc.TickInterval)
		if err != nil {
			return fmt.Errorf("parse tick_interval: %w", err)
		}
		cfg.TickInterval = d
	}
	cfg.Defaults = mergeDefaults(cfg.Defaults, fc.Defaults)
	return nil
}

type fileDefaults struct {
	OnsitePeople        *float64 `yaml:"onsite_people"`
	RemotePeople        *float64 `yaml:"remote_people"`
	RoomAreaM2          *float64 `yaml:"room_area_m2"`
	CeilingHeightM      *float64 `yaml:"ceiling_height_m"`
	HourlyCostPerPerson *float64 `yaml:"hourly_cost_per_person"`
	Currency            *string  `yaml:"currency"`
	O2ConsumptionLpm    *float64 `yaml:"o2_consumption_lpm"`
}

func mergeDefaults(base Defaults, file fileDefaults) Defaults {
	out := base
	setFloat(&out.OnsitePeople, file.OnsitePeople)
	setFloat(&out.RemotePeople, file.RemotePeople)
	setFloat(&out.RoomAreaM2, file.RoomAreaM2)
	setFloat(&out.CeilingHeightM, file.CeilingHeightM)
	setFloat(&out.HourlyCostPerPerson, file.HourlyCostPerPerson)
	setFloat(&out.O2ConsumptionLpm, file.O2ConsumptionLpm)
	if file.Currency != nil {
		out.Currency = *file.Currency
	}
	return out
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AIRTIME_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("AIRTIME_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AIRTIME_CURRENCY"); v != "" {
		cfg.Defaults.Currency = v
	}
	if v := os.Getenv("AIRTIME_STATUS_ADDR"); v != "" {
		cfg.StatusAddr = v
	}
}

func configFilePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "airtime", "config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "airtime", "config.yaml")
	}
	return ""
}

func defaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "airtime")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "airtime")
	}
	return filepath.Join(".", ".airtime")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
