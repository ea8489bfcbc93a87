package status

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const cargoBarWidth = 20

type RenderOptions struct {
	Settings domain.Settings
	// Title replaces the default heading, e.g. with a scenario name.
	Title string
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Salvage tracker"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(headerLine(status)),
	}

	panels := make([]string, 0, 4)
	if status.OnBoat {
		settings := opts.Settings
		if settings.Panels.Status && status.StatusKnown {
			panels = append(panels, statusPanel(status, s))
		}
		if settings.Panels.Cargo {
			panels = append(panels, cargoPanel(status.Cargo, settings.Cargo, s))
		}
		if settings.Panels.Crew {
			panels = append(panels, crewPanel(status, s))
		}
		if settings.Panels.Timing && (status.Timing.TotalHooks > 0 || status.Crystal.RemainingSeconds >= 0) {
			panels = append(panels, timingPanel(status, opts.Settings, s))
		}
	} else {
		lines = append(lines, s.empty.Render("Not on a vessel."))
	}

	for _, panel := range panels {
		lines = append(lines, s.panel.Render(panel))
	}

	if dedication := strings.TrimSpace(opts.Settings.Dedication); dedication != "" {
		lines = append(lines, s.footer.Render(dedication))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(status application.Status) string {
	session := status.SessionID
	if len(session) > 8 {
		session = session[:8]
	}

	return fmt.Sprintf("session %s, tick %d", session, status.Ticks)
}

func statusPanel(status application.Status, s styles) string {
	switch {
	case !status.Active:
		return s.bad.Render("IDLE")
	case status.Salvaging:
		return s.good.Render("Cleaning")
	default:
		return s.good.Render("Salvaging")
	}
}

func cargoPanel(cargo application.StatusCargo, settings domain.CargoSettings, s styles) string {
	valueStyle := s.value
	var value string
	switch {
	case cargo.DefinitelyFull:
		value = "FULL"
	case cargo.Max > 0:
		value = fmt.Sprintf("%d / %d", cargo.Used, cargo.Max)
	default:
		value = "Unknown"
		valueStyle = s.empty
	}
	if cargo.DefinitelyFull && settings.HighlightWhenFull {
		valueStyle = lipgloss.NewStyle().Bold(true).Foreground(fullColor(settings.FullColor))
	}

	parts := []string{
		s.panelTitle.Render("Cargo"),
		line(s.key.Render("Cargo:"), valueStyle.Render(value)),
	}
	if cargo.Max > 0 {
		parts = append(parts, renderProgressBar(fillPercent(cargo.Used, cargo.Max), cargoBarWidth, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func crewPanel(status application.Status, s styles) string {
	crew := status.Crew
	haveHooks := len(crew.Workers) > 0

	parts := []string{s.panelTitle.Render("Salvage crew")}

	switch {
	case crew.Tracked > 0:
		style := s.bad
		if crew.Working > 0 {
			style = s.good
		}
		parts = append(parts, line(
			style.Inherit(s.key).Render("Crew salvaging:"),
			style.Render(fmt.Sprintf("%d/%d", crew.Working, crew.Tracked)),
		))
	case !haveHooks:
		parts = append(parts, s.empty.Render("No crew detected yet."))
	}

	if !haveHooks {
		parts = append(parts, s.empty.Render("No hooks yet."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, worker := range crew.Workers {
		value := fmt.Sprintf("%d", worker.Hooks)
		if worker.RatePerHour > 0 {
			value += fmt.Sprintf(" (%.1f/hr)", worker.RatePerHour)
		}
		parts = append(parts, line(s.key.Render(worker.Name+":"), s.value.Render(value)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func timingPanel(status application.Status, settings domain.Settings, s styles) string {
	timing := status.Timing
	parts := []string{s.panelTitle.Render("Salvage timing")}

	if timing.TotalHooks > 0 {
		parts = append(parts,
			line(s.key.Render("Total salvages:"), s.value.Render(fmt.Sprintf("%d", timing.TotalHooks))),
			line(s.key.Render("Avg between hooks:"), s.value.Render(fmt.Sprintf("%.1fs", timing.AverageIntervalSeconds))),
		)
		if timing.SecondsSinceLast >= 0 {
			parts = append(parts, line(s.key.Render("Last salvage:"), s.value.Render(fmt.Sprintf("%ds ago", timing.SecondsSinceLast))))
		}
	}

	if remaining := status.Crystal.RemainingSeconds; remaining >= 0 {
		value := s.good.Render("READY")
		if remaining > 0 {
			period := settings.CrystalCooldown.Seconds()
			faded := lipgloss.NewStyle().Foreground(interpolateColor(period-float64(remaining), 0, period))
			value = faded.Inherit(s.pending).Render(fmt.Sprintf("%ds", remaining))
		}
		parts = append(parts, line(s.key.Render("Crystal hook:"), value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func line(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, key, " ", value)
}

func fullColor(raw string) lipgloss.TerminalColor {
	if raw = strings.TrimSpace(raw); raw == "" {
		raw = domain.DefaultCargoFullColor
	}

	return lipgloss.Color(raw)
}

func fillPercent(used, limit int) float64 {
	if limit <= 0 {
		return 0
	}

	return clampPercent(float64(used) / float64(limit) * 100)
}

func renderProgressBar(filledPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(filledPercent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, low, high float64) lipgloss.Color {
	if high == low {
		return lipgloss.Color("255")
	}

	normalized := (value - low) / (high - low)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	colorCode := int(240.0 + 15.0*normalized)
	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
