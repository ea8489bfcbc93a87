package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/bnema/salvage-tracker/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "salvage"
	envPrefix  = "SALVAGE"

	// PathKey names an explicit config file and bypasses the search path.
	PathKey = "config.path"

	KeyPanelStatus         = "panels.status"
	KeyPanelCargo          = "panels.cargo"
	KeyPanelCrew           = "panels.crew"
	KeyPanelTiming         = "panels.timing"
	KeyHighlightWhenFull   = "cargo.highlight_when_full"
	KeyFullColor           = "cargo.full_color"
	KeyCapacityOverride    = "cargo.capacity_override"
	KeyPresenceWindow      = "presence.window"
	KeyAnimationEvidence   = "presence.animation_evidence"
	KeyCorroborationWindow = "hooks.corroboration_window"
	KeyCrystalCooldown     = "crystal.cooldown"
	KeyDedication          = "credits.dedication"
	KeyLogLevel            = "log.level"
)

// Store loads settings through viper and keeps the last valid copy. The
// tracker reads it on every use, so a reload applies immediately.
type Store struct {
	cfg    *viper.Viper
	logger *log.Logger

	mu       sync.RWMutex
	settings domain.Settings
}

var _ ports.SettingsStore = (*Store)(nil)

func NewStore(cfg *viper.Viper, logger *log.Logger) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	setDefaults(cfg)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if path := cfg.GetString(PathKey); path != "" {
		cfg.SetConfigFile(path)
	} else {
		dirs, err := searchDirs()
		if err != nil {
			return nil, err
		}
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		for _, dir := range dirs {
			cfg.AddConfigPath(dir)
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	settings, err := decode(cfg)
	if err != nil {
		return nil, err
	}

	return &Store{cfg: cfg, logger: logger, settings: settings}, nil
}

func (s *Store) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// ConfigFile returns the file settings were read from, or "" when only
// defaults and environment apply.
func (s *Store) ConfigFile() string {
	return s.cfg.ConfigFileUsed()
}

// Values returns the effective settings keyed like the config file.
func (s *Store) Values() map[string]any {
	settings := s.Settings()

	return map[string]any{
		"panels": map[string]any{
			"status": settings.Panels.Status,
			"cargo":  settings.Panels.Cargo,
			"crew":   settings.Panels.Crew,
			"timing": settings.Panels.Timing,
		},
		"cargo": map[string]any{
			"highlight_when_full": settings.Cargo.HighlightWhenFull,
			"full_color":          settings.Cargo.FullColor,
			"capacity_override":   settings.Cargo.CapacityOverride,
		},
		"presence": map[string]any{
			"window":             settings.PresenceWindow.String(),
			"animation_evidence": settings.AnimationPresenceEvidence,
		},
		"hooks": map[string]any{
			"corroboration_window": settings.CorroborationWindow.String(),
		},
		"crystal": map[string]any{
			"cooldown": settings.CrystalCooldown.String(),
		},
		"credits": map[string]any{
			"dedication": settings.Dedication,
		},
		"log": map[string]any{
			"level": settings.LogLevel,
		},
	}
}

// Reload re-reads the config file. Invalid settings leave the previous
// copy in place.
func (s *Store) Reload() error {
	if s.cfg.ConfigFileUsed() != "" {
		if err := s.cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return s.refresh()
}

// Watch reloads settings whenever the config file changes and hands the
// new copy to onChange. It is a no-op when no config file was read.
func (s *Store) Watch(onChange func(domain.Settings)) {
	if s.cfg.ConfigFileUsed() == "" {
		return
	}

	s.cfg.OnConfigChange(func(ev fsnotify.Event) {
		if err := s.refresh(); err != nil {
			s.logger.Warn("keeping previous settings", "file", ev.Name, "err", err)
			return
		}
		s.logger.Info("settings reloaded", "file", ev.Name)
		if onChange != nil {
			onChange(s.Settings())
		}
	})
	s.cfg.WatchConfig()
}

func (s *Store) refresh() error {
	settings, err := decode(s.cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	return nil
}

func setDefaults(cfg *viper.Viper) {
	defaults := domain.DefaultSettings()

	cfg.SetDefault(KeyPanelStatus, defaults.Panels.Status)
	cfg.SetDefault(KeyPanelCargo, defaults.Panels.Cargo)
	cfg.SetDefault(KeyPanelCrew, defaults.Panels.Crew)
	cfg.SetDefault(KeyPanelTiming, defaults.Panels.Timing)
	cfg.SetDefault(KeyHighlightWhenFull, defaults.Cargo.HighlightWhenFull)
	cfg.SetDefault(KeyFullColor, defaults.Cargo.FullColor)
	cfg.SetDefault(KeyCapacityOverride, defaults.Cargo.CapacityOverride)
	cfg.SetDefault(KeyPresenceWindow, defaults.PresenceWindow)
	cfg.SetDefault(KeyAnimationEvidence, defaults.AnimationPresenceEvidence)
	cfg.SetDefault(KeyCorroborationWindow, defaults.CorroborationWindow)
	cfg.SetDefault(KeyCrystalCooldown, defaults.CrystalCooldown)
	cfg.SetDefault(KeyDedication, defaults.Dedication)
	cfg.SetDefault(KeyLogLevel, defaults.LogLevel)
}

func decode(cfg *viper.Viper) (domain.Settings, error) {
	settings := domain.Settings{
		Panels: domain.PanelSettings{
			Status: cfg.GetBool(KeyPanelStatus),
			Cargo:  cfg.GetBool(KeyPanelCargo),
			Crew:   cfg.GetBool(KeyPanelCrew),
			Timing: cfg.GetBool(KeyPanelTiming),
		},
		Cargo: domain.CargoSettings{
			HighlightWhenFull: cfg.GetBool(KeyHighlightWhenFull),
			FullColor:         cfg.GetString(KeyFullColor),
			CapacityOverride:  cfg.GetInt(KeyCapacityOverride),
		},
		PresenceWindow:            cfg.GetDuration(KeyPresenceWindow),
		AnimationPresenceEvidence: cfg.GetBool(KeyAnimationEvidence),
		CorroborationWindow:       cfg.GetDuration(KeyCorroborationWindow),
		CrystalCooldown:           cfg.GetDuration(KeyCrystalCooldown),
		Dedication:                cfg.GetString(KeyDedication),
		LogLevel:                  cfg.GetString(KeyLogLevel),
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	return settings, nil
}

func searchDirs() ([]string, error) {
	dirs := make([]string, 0, 2)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, configDir))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	dirs = append(dirs, filepath.Join(homeDir, ".config", configDir))

	return dirs, nil
}
