package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bnema/salvage-tracker/internal/adapters/host/scripted"
	statusadapter "github.com/bnema/salvage-tracker/internal/adapters/render/status"
	"github.com/bnema/salvage-tracker/internal/adapters/replay"
	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/bnema/salvage-tracker/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type watchStepsMsg struct {
	steps []replay.Step
}

type watchStreamDoneMsg struct {
	err error
}

type watchPollMsg time.Time

type watchRetryMsg struct{}

type watchSettingsMsg struct {
	settings domain.Settings
}

type watchModel struct {
	spinner  spinner.Model
	tracker  *application.Tracker
	player   *replay.Player
	decoder  *replay.Decoder
	recorder *replay.Recorder
	settings ports.SettingsStore
	interval time.Duration
	follow   bool

	started bool
	done    bool
	err     error
	frame   string
}

func newWatchModel(tracker *application.Tracker, player *replay.Player, decoder *replay.Decoder, recorder *replay.Recorder, settings ports.SettingsStore, interval time.Duration, follow bool) watchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return watchModel{
		spinner:  s,
		tracker:  tracker,
		player:   player,
		decoder:  decoder,
		recorder: recorder,
		settings: settings,
		interval: interval,
		follow:   follow,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.readNext(), m.poll())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.started {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case watchStepsMsg:
		m.started = true
		for _, step := range msg.steps {
			if err := m.player.Apply(step, nil); err != nil {
				m.err = err
				m.done = true
				return m, tea.Quit
			}
			if m.recorder != nil {
				m.recorder.Record(step)
			}
		}
		m.frame = m.view()
		return m, m.readNext()
	case watchStreamDoneMsg:
		m.err = msg.err
		m.frame = m.view()
		if m.err == nil && m.follow {
			return m, m.retry()
		}
		m.done = true
		return m, tea.Quit
	case watchRetryMsg:
		return m, m.readNext()
	case watchPollMsg:
		if m.started {
			m.frame = m.view()
		}
		return m, m.poll()
	case watchSettingsMsg:
		m.frame = m.view()
		return m, nil
	default:
		return m, nil
	}
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}
	if !m.started {
		return fmt.Sprintf("%s %s", m.spinner.View(), "Waiting for game events...")
	}

	return m.frame
}

func (m watchModel) view() string {
	return statusadapter.View(m.tracker.Snapshot(), statusadapter.RenderOptions{Settings: m.settings.Settings()})
}

func (m watchModel) readNext() tea.Cmd {
	decoder := m.decoder
	return func() tea.Msg {
		steps, err := decoder.Next()
		if errors.Is(err, io.EOF) {
			return watchStreamDoneMsg{}
		}
		if err != nil {
			return watchStreamDoneMsg{err: err}
		}
		return watchStepsMsg{steps: steps}
	}
}

func (m watchModel) retry() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return watchRetryMsg{}
	})
}

func (m watchModel) poll() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchPollMsg(t)
	})
}

func newWatchCmd(app *app) *cobra.Command {
	var input string
	var interval time.Duration
	var follow bool
	var record string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Apply a live JSONL event stream and redraw the panels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			store, err := app.settingsStore()
			if err != nil {
				return err
			}
			logger, err := app.logger(cmd.ErrOrStderr(), store)
			if err != nil {
				return err
			}

			source, closeSource, err := openWatchInput(cmd, input)
			if err != nil {
				return err
			}
			defer closeSource()

			var recorder *replay.Recorder
			if record != "" {
				if format, err := replay.FormatFromPath(record); err != nil || format == replay.FormatJSONL {
					return fmt.Errorf("--record needs a .toml or .yaml path, got %q", record)
				}
				recorder = replay.NewRecorder("recorded session", ports.SystemClock{})
			}

			decoder := replay.NewDecoder(source)
			if follow {
				decoder.Follow()
			}

			client := scripted.NewClient()
			tracker := application.NewTracker(client, store, ports.SystemClock{}, logger)
			defer tracker.Close()

			watchErr := runWatch(cmd.Context(), cmd, app, store, logger, newWatchModel(
				tracker,
				replay.NewPlayer(tracker, client),
				decoder,
				recorder,
				store,
				interval,
				follow,
			))

			if recorder != nil {
				scenario := recorder.Scenario()
				if err := replay.Save(record, scenario); err != nil {
					return errors.Join(watchErr, fmt.Errorf("save recording: %w", err))
				}
				logger.Info("recorded session", "path", record, "steps", len(scenario.Steps))
			}

			return watchErr
		},
	}

	cmd.Flags().StringVar(&input, "input", "-", "JSONL event stream to read, - for stdin")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "redraw interval")
	cmd.Flags().BoolVar(&follow, "follow", false, "keep reading appended events after the stream ends, until interrupted")
	cmd.Flags().StringVar(&record, "record", "", "save the applied steps as a replayable .toml or .yaml scenario")

	return cmd
}

func openWatchInput(cmd *cobra.Command, input string) (io.Reader, func(), error) {
	if input == "" || input == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, nil, fmt.Errorf("open event stream: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}

type settingsWatcher interface {
	Watch(onChange func(domain.Settings))
}

func runWatch(ctx context.Context, cmd *cobra.Command, app *app, store settingsWatcher, logger *log.Logger, m watchModel) error {
	p := tea.NewProgram(
		m,
		tea.WithInput(nil),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(ctx),
	)

	store.Watch(func(settings domain.Settings) {
		logger.Debug("redrawing with new settings", "capacityOverride", settings.Cargo.CapacityOverride)
		p.Send(watchSettingsMsg{settings: settings})
	})

	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrInterrupted) {
		return err
	}

	result, ok := finalModel.(watchModel)
	if !ok {
		return fmt.Errorf("unexpected final watch model type %T", finalModel)
	}
	if result.err != nil {
		return result.err
	}

	return writeStatusOutput(cmd, app, result.tracker.Snapshot(), result.settings.Settings(), "", false)
}
