package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/salvage-tracker/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatJSONL Format = "jsonl"
)

var defaultStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type Scenario struct {
	Name      string
	Start     time.Time
	LocalView *domain.WorldViewID
	Steps     []Step
}

// FormatFromPath picks a decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedScenarioFormat, ext)
	}
}

func Load(path string) (Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Scenario{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	scenario, err := Decode(data, format)
	if err != nil {
		return Scenario{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return scenario, nil
}

func Decode(data []byte, format Format) (Scenario, error) {
	switch format {
	case FormatTOML, FormatYAML:
		file, err := decodeFile(data, format)
		if err != nil {
			return Scenario{}, err
		}
		return fromSchema(file)
	case FormatJSONL:
		return decodeStream(bytes.NewReader(data))
	default:
		return Scenario{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedScenarioFormat, format)
	}
}

func decodeFile(data []byte, format Format) (scenarioSchema, error) {
	var file scenarioSchema

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return scenarioSchema{}, fmt.Errorf("decode scenario toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return scenarioSchema{}, fmt.Errorf("decode scenario yaml: %w", err)
		}
	}

	if err := file.validateVersion(); err != nil {
		return scenarioSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func fromSchema(file scenarioSchema) (Scenario, error) {
	scenario := Scenario{Name: file.Name, Start: defaultStart}

	if file.Start != "" {
		start, err := time.Parse(time.RFC3339, file.Start)
		if err != nil {
			return Scenario{}, fmt.Errorf("parse scenario start: %w", err)
		}
		scenario.Start = start
	}

	var conv converter
	if file.LocalView != nil {
		view := domain.WorldViewID(*file.LocalView)
		scenario.LocalView = &view
		conv.view = view
	}

	for i, raw := range file.Steps {
		steps, err := conv.convert(raw)
		if err != nil {
			return Scenario{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		scenario.Steps = append(scenario.Steps, steps...)
	}

	return scenario, nil
}

func decodeStream(r io.Reader) (Scenario, error) {
	scenario := Scenario{Start: defaultStart}

	dec := NewDecoder(r)
	for {
		steps, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return scenario, nil
		}
		if err != nil {
			return Scenario{}, err
		}
		scenario.Steps = append(scenario.Steps, steps...)
	}
}
