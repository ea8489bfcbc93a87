package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultCargoFullColor = "#FF0000"
	DefaultDedication     = "Dedicated to the community"
	DefaultLogLevel       = "info"
)

var colorPattern = regexp.MustCompile(`^(#[0-9A-Fa-f]{6}|#[0-9A-Fa-f]{8}|[0-9]{1,3})$`)

type PanelSettings struct {
	Status bool
	Cargo  bool
	Crew   bool
	Timing bool
}

type CargoSettings struct {
	HighlightWhenFull bool
	FullColor         string
	CapacityOverride  int
}

// Settings is owned by the configuration store; the tracker only reads it.
// Panel toggles and colours affect presentation, never tracking.
type Settings struct {
	Panels                    PanelSettings
	Cargo                     CargoSettings
	PresenceWindow            time.Duration
	AnimationPresenceEvidence bool
	CorroborationWindow       time.Duration
	CrystalCooldown           time.Duration
	Dedication                string
	LogLevel                  string
}

func DefaultSettings() Settings {
	return Settings{
		Panels: PanelSettings{Status: true, Cargo: true, Crew: true, Timing: true},
		Cargo: CargoSettings{
			HighlightWhenFull: true,
			FullColor:         DefaultCargoFullColor,
		},
		PresenceWindow:            DefaultPresenceWindow,
		AnimationPresenceEvidence: true,
		CorroborationWindow:       DefaultCorroborationWindow,
		CrystalCooldown:           DefaultCrystalCooldown,
		Dedication:                DefaultDedication,
		LogLevel:                  DefaultLogLevel,
	}
}

func (s Settings) Validate() error {
	if s.Cargo.CapacityOverride < 0 {
		return fmt.Errorf("%w: cargo capacity override must be >= 0, got %d", ErrInvalidSettings, s.Cargo.CapacityOverride)
	}
	if s.CorroborationWindow < 0 {
		return fmt.Errorf("%w: corroboration window must be >= 0, got %s", ErrInvalidSettings, s.CorroborationWindow)
	}
	if s.CrystalCooldown <= 0 {
		return fmt.Errorf("%w: crystal cooldown must be > 0, got %s", ErrInvalidSettings, s.CrystalCooldown)
	}
	if color := strings.TrimSpace(s.Cargo.FullColor); color != "" && !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: unsupported cargo full color %q", ErrInvalidSettings, s.Cargo.FullColor)
	}

	return nil
}
