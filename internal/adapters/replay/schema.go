package replay

import (
	"fmt"

	"github.com/bnema/salvage-tracker/internal/domain"
)

const currentSchemaVersion = 1

type scenarioSchema struct {
	Version   int          `toml:"version" yaml:"version"`
	Name      string       `toml:"name,omitempty" yaml:"name,omitempty"`
	Start     string       `toml:"start,omitempty" yaml:"start,omitempty"`
	LocalView *int         `toml:"local_view,omitempty" yaml:"local_view,omitempty"`
	Steps     []stepSchema `toml:"steps,omitempty" yaml:"steps,omitempty"`
}

func (s *scenarioSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s scenarioSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("%w %d (current %d)", domain.ErrUnsupportedScenarioVersion, s.Version, currentSchemaVersion)
	}

	return nil
}

// stepSchema is shared by scenario files and JSONL streams. Fields that do
// not apply to a step's kind are ignored.
type stepSchema struct {
	At          string `toml:"at,omitempty" yaml:"at,omitempty" json:"at,omitempty"`
	Kind        string `toml:"kind" yaml:"kind" json:"kind"`
	Skill       string `toml:"skill,omitempty" yaml:"skill,omitempty" json:"skill,omitempty"`
	LocalPlayer bool   `toml:"local_player,omitempty" yaml:"local_player,omitempty" json:"local_player,omitempty"`
	Handle      uint64 `toml:"handle,omitempty" yaml:"handle,omitempty" json:"handle,omitempty"`
	Animation   int    `toml:"animation,omitempty" yaml:"animation,omitempty" json:"animation,omitempty"`
	TopLevel    bool   `toml:"top_level,omitempty" yaml:"top_level,omitempty" json:"top_level,omitempty"`
	Name        string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	WorldView   *int   `toml:"world_view,omitempty" yaml:"world_view,omitempty" json:"world_view,omitempty"`
	Text        string `toml:"text,omitempty" yaml:"text,omitempty" json:"text,omitempty"`
	Channel     string `toml:"channel,omitempty" yaml:"channel,omitempty" json:"channel,omitempty"`
	Group       *int   `toml:"group,omitempty" yaml:"group,omitempty" json:"group,omitempty"`
	Child       int    `toml:"child,omitempty" yaml:"child,omitempty" json:"child,omitempty"`
	Hidden      bool   `toml:"hidden,omitempty" yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Quantities  []int  `toml:"quantities,omitempty" yaml:"quantities,omitempty" json:"quantities,omitempty"`
	Remove      bool   `toml:"remove,omitempty" yaml:"remove,omitempty" json:"remove,omitempty"`
	Leave       bool   `toml:"leave,omitempty" yaml:"leave,omitempty" json:"leave,omitempty"`
	Boundary    string `toml:"boundary,omitempty" yaml:"boundary,omitempty" json:"boundary,omitempty"`
	Repeat      int    `toml:"repeat,omitempty" yaml:"repeat,omitempty" json:"repeat,omitempty"`
}
