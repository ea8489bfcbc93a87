package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	configadapter "github.com/bnema/salvage-tracker/internal/adapters/config"
	statusadapter "github.com/bnema/salvage-tracker/internal/adapters/render/status"
	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFlag   = "config"
	logLevelFlag = "log-level"
)

type app struct {
	cfg            *viper.Viper
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time

	storeOnce sync.Once
	store     *configadapter.Store
	storeErr  error
}

// wireApp binds the global flags into viper. The settings store is built on
// first use so that flag values are parsed by then.
func wireApp(flags *pflag.FlagSet) (*app, error) {
	cfg := viper.New()

	flags.String(configFlag, "", "path to a config.toml (default: $XDG_CONFIG_HOME/salvage or ~/.config/salvage)")
	flags.String(logLevelFlag, "", "log level: debug, info, warn or error")

	if err := cfg.BindPFlag(configadapter.PathKey, flags.Lookup(configFlag)); err != nil {
		return nil, fmt.Errorf("bind --%s: %w", configFlag, err)
	}
	if err := cfg.BindPFlag(configadapter.KeyLogLevel, flags.Lookup(logLevelFlag)); err != nil {
		return nil, fmt.Errorf("bind --%s: %w", logLevelFlag, err)
	}

	return &app{
		cfg:            cfg,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

func (a *app) settingsStore() (*configadapter.Store, error) {
	a.storeOnce.Do(func() {
		a.store, a.storeErr = configadapter.NewStore(a.cfg, nil)
		if a.storeErr != nil {
			a.storeErr = fmt.Errorf("wire settings store: %w", a.storeErr)
		}
	})

	return a.store, a.storeErr
}

func (a *app) logger(w io.Writer, store ports.SettingsStore) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "salvage",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	raw := strings.TrimSpace(store.Settings().LogLevel)
	if raw == "" {
		return logger, nil
	}

	level, err := log.ParseLevel(raw)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", raw, err)
	}
	logger.SetLevel(level)

	return logger, nil
}
