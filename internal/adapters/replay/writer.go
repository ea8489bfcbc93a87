package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	scenarioFileMode = 0o644
	scenarioDirMode  = 0o755
	tempFilePattern  = ".scenario-*.tmp"
)

// Save writes scenario as TOML or YAML, picked from the extension. The file
// is replaced atomically.
func Save(path string, scenario Scenario) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(scenario, format)
	if err != nil {
		return err
	}

	return writeFileAtomic(path, data)
}

func Encode(scenario Scenario, format Format) ([]byte, error) {
	file := toSchema(scenario)

	switch format {
	case FormatTOML:
		data, err := toml.Marshal(file)
		if err != nil {
			return nil, fmt.Errorf("encode scenario toml: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(file)
		if err != nil {
			return nil, fmt.Errorf("encode scenario yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: cannot write %q", domain.ErrUnsupportedScenarioFormat, format)
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, scenarioDirMode); err != nil {
		return fmt.Errorf("create scenario directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp scenario file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp scenario file: %w", err)
	}

	if err := tempFile.Chmod(scenarioFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp scenario file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp scenario file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace scenario file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(scenario Scenario) scenarioSchema {
	file := scenarioSchema{
		Version: currentSchemaVersion,
		Name:    scenario.Name,
	}
	if !scenario.Start.IsZero() {
		file.Start = scenario.Start.Format(time.RFC3339Nano)
	}
	if scenario.LocalView != nil {
		file.LocalView = intPtr(int(*scenario.LocalView))
	}

	file.Steps = make([]stepSchema, 0, len(scenario.Steps))
	for _, step := range scenario.Steps {
		file.Steps = append(file.Steps, toStepSchema(step))
	}

	return file
}

func toStepSchema(step Step) stepSchema {
	raw := stepSchema{At: step.At.String()}

	switch {
	case step.Event != nil:
		raw.Kind = string(step.Event.Kind())
		switch ev := step.Event.(type) {
		case application.SkillProgress:
			raw.Skill = string(ev.Skill)
		case application.AnimationChanged:
			raw.LocalPlayer = ev.LocalPlayer
			raw.Handle = uint64(ev.Handle)
			raw.Animation = int(ev.Animation)
			raw.TopLevel = ev.TopLevelView
		case application.OverheadText:
			raw.Handle = uint64(ev.Handle)
			raw.Name = ev.Name
			raw.WorldView = intPtr(int(ev.WorldView))
			raw.Text = ev.Text
		case application.ChatLine:
			raw.Channel = string(ev.Channel)
			raw.Text = ev.Text
		case application.WidgetLoaded:
			raw.Group = intPtr(ev.Group)
		case application.NpcSpawned:
			raw.Handle = uint64(ev.Handle)
			raw.Name = ev.Name
			raw.WorldView = intPtr(int(ev.WorldView))
		case application.NpcDespawned:
			raw.Handle = uint64(ev.Handle)
		case application.SessionBoundary:
			raw.Boundary = string(ev.Boundary)
		}
	case step.Widget != nil:
		raw.Kind = kindWidget
		raw.Group = intPtr(step.Widget.Group)
		raw.Child = step.Widget.Child
		raw.Remove = step.Widget.Remove
		raw.Hidden = step.Widget.Widget.Hidden
		raw.Text = step.Widget.Widget.Text
		for _, child := range step.Widget.Widget.Children {
			raw.Quantities = append(raw.Quantities, child.ItemQuantity)
		}
	case step.World != nil:
		raw.Kind = kindWorldView
		raw.Leave = step.World.Leave
		if !step.World.Leave {
			raw.WorldView = intPtr(int(step.World.View))
		}
	case step.Render:
		raw.Kind = kindRender
	}

	return raw
}

func intPtr(v int) *int {
	return &v
}
