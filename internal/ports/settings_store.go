package ports

import "github.com/bnema/salvage-tracker/internal/domain"

type SettingsStore interface {
	Settings() domain.Settings
}

// StaticSettings serves a fixed value.
type StaticSettings domain.Settings

func (s StaticSettings) Settings() domain.Settings {
	return domain.Settings(s)
}
