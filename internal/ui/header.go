package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, countdown and refresh state.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("churrasco", styles.Logo)}

	if !m.event.At.IsZero() {
		remaining := m.event.Countdown(m.now)
		style := styles.WarningText.Bold(true)
		if remaining.Started {
			style = styles.SuccessText
		}
		parts = append(parts, bg.Render("⏱ "+remaining.String(), style))
		if !compact {
			parts = append(parts, bg.Render(m.event.At.Format("02/01/2006 15:04"), styles.MutedText))
		}
	}

	parts = append(parts, m.refreshIndicator(styles, bg, compact))

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// refreshIndicator describes when data was loaded and when it reloads next.
func (m Model) refreshIndicator(styles Styles, bg BgStyle, compact bool) string {
	switch {
	case m.refresh.Editing:
		return bg.Render("✎ Editando, atualização pausada", styles.InfoText)
	case m.fetching:
		return bg.Render("Atualizando...", styles.WarningText)
	case m.refresh.Cached == nil:
		return bg.Render("Carregando...", styles.WarningText)
	}

	next := bg.Render("próxima em "+formatWait(m.sched.NextIn(m.refresh)), styles.MutedText)
	if m.refresh.Stale {
		next = bg.Render("atualização pendente", styles.WarningText)
	}
	if compact {
		return next
	}
	last := bg.Render("atualizado "+m.refresh.CachedAt.Format("15:04:05"), styles.FaintText)
	return last + bg.Spaces(2) + next
}

// formatWait renders a short wait as "42s" or "1m 05s".
func formatWait(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %02ds", int(d/time.Minute), int(d%time.Minute/time.Second))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewItems:
		commands = []cmd{
			{"a", "Novo"},
			{"e", "Editar"},
			{"d", "Excluir"},
			{"p", "Pessoas extras"},
			{"j/k", "Navegar"},
		}
	case ViewLogs:
		followLabel := "Pausar"
		if !m.logs.follow {
			followLabel = "Seguir"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"j/k", "Rolar"},
			{"g/G", "Início/Fim"},
		}
	default: // ViewDashboard
		commands = []cmd{
			{"/", "Nome"},
			{"f", m.statusFilter.String()}, // Shows current filter state
			{"c", "Limpar"},
			{"j/k", "Navegar"},
		}
	}
	commands = append(commands,
		cmd{"1/2/3", viewName(m.currentView)},
		cmd{"r", "Recarregar"},
		cmd{"?", "Ajuda"},
	)

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewDashboard {
		if q := strings.TrimSpace(m.nameFilter.Value()); q != "" && !m.filtering {
			segments = append(segments, bg.Render("/"+truncate(q, 18), styles.AccentText))
		}
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

func viewName(v View) string {
	switch v {
	case ViewItems:
		return "Itens"
	case ViewLogs:
		return "Logs"
	default:
		return "Painel"
	}
}
