package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churrascode/churrasco/internal/payments"
)

// Payment cell states, used as StatusColors keys.
const (
	statusPaid     = "paid"
	statusOverdue  = "overdue"
	statusUpcoming = "upcoming"
)

// paymentStatus classifies one roster cell the same way the status
// messages do.
func paymentStatus(message string) string {
	switch message {
	case payments.MessagePaid:
		return statusPaid
	case payments.MessageUpcoming:
		return statusUpcoming
	default:
		return statusOverdue
	}
}

// shortStatus is the one-glyph form used when full messages do not fit.
func shortStatus(status string) string {
	switch status {
	case statusPaid:
		return "✔"
	case statusUpcoming:
		return "…"
	default:
		return "✘"
	}
}

// kpi is one dashboard indicator card.
type kpi struct {
	value string
	label string
}

// dashboardKPIs computes the indicator cards from the current snapshot.
func (m Model) dashboardKPIs() []kpi {
	fin := payments.Summarize(m.snapshot.Roster, len(m.months), m.fee)
	items := len(m.snapshot.Document.Items)
	extras := m.snapshot.Document.ExtraGuestsTotal()
	return []kpi{
		{payments.FormatBRL(fin.TotalDue), "Total Devido"},
		{payments.FormatBRL(fin.TotalCollected), fmt.Sprintf("Arrecadado (%.1f%%)", fin.PercentPaid)},
		{fmt.Sprint(fin.Collaborators), "Colaboradores"},
		{fmt.Sprint(items), "Itens Cadastrados"},
		{fmt.Sprint(extras), "Pessoas Extras"},
		{fmt.Sprint(fin.Collaborators + extras), "Público Estimado"},
	}
}

// filteredRows applies the name and status filters to the roster.
func (m Model) filteredRows() []payments.Row {
	return payments.Filter(m.snapshot.Roster, m.nameFilter.Value(), m.statusFilter)
}

// handleDashboardKey processes keyboard input for the dashboard view.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.filteredRows())

	switch {
	case key.Matches(msg, m.keys.FilterName):
		m.filtering = true
		m.nameFilter.Focus()
		return m, nil
	case key.Matches(msg, m.keys.CycleFilter):
		m.statusFilter = m.statusFilter.Next()
		m.selectedRow = 0
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.ClearFilters), key.Matches(msg, m.keys.Escape):
		m.nameFilter.SetValue("")
		if m.statusFilter != payments.StatusAll {
			m.statusFilter = payments.StatusAll
			m.savePrefs()
		}
		m.selectedRow = 0
		return m, nil
	}

	if rows == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow = min(m.selectedRow+1, rows-1)
	case key.Matches(msg, m.keys.Up):
		m.selectedRow = max(m.selectedRow-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = rows - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(m.selectedRow+m.pageSize()/2, rows-1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(m.selectedRow-m.pageSize()/2, 0)
	}
	return m, nil
}

func (m Model) pageSize() int {
	return max(m.height-12, 2)
}

// renderDashboard renders countdown KPIs, the payment progress and the
// roster table.
func (m Model) renderDashboard() string {
	contentHeight := m.height - 2 // Account for header + cmdbar

	if body, ok := m.renderLoadState(contentHeight); !ok {
		return body
	}

	kpis := m.renderKPIs()
	progress := m.renderProgress()
	used := lipgloss.Height(kpis) + lipgloss.Height(progress)
	table := m.renderRosterBox(m.width, max(contentHeight-used, 4))

	return lipgloss.JoinVertical(lipgloss.Left, kpis, progress, table)
}

// renderLoadState renders the placeholder shown instead of a data view when
// nothing is loaded yet or the last load failed. ok is true when the view
// should render normally.
func (m Model) renderLoadState(height int) (string, bool) {
	styles := m.theme.Styles()

	if m.refresh.Cached == nil {
		msg := styles.MutedText.Render("Carregando dados...")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg), false
	}

	if err := m.snapshot.LastError; err != nil {
		lines := []string{
			styles.DangerText.Render("Erro ao carregar dados"),
			"",
			styles.Text.Render(truncate(err.Error(), max(m.width-8, 20))),
			"",
			styles.MutedText.Render("Nova tentativa em " + formatWait(m.sched.NextIn(m.refresh)) + "  (r para tentar agora)"),
		}
		return m.renderTitledBox("Erro", strings.Join(lines, "\n"), m.width, height, true), false
	}

	return "", true
}

// renderKPIs renders the indicator cards, three per row when narrow.
func (m Model) renderKPIs() string {
	kpis := m.dashboardKPIs()
	perRow := len(kpis)
	if m.width < LayoutCompactWidth {
		perRow = 3
	}
	cardWidth := max(m.width/perRow-2, 12)

	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Accent))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Muted))
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Align(lipgloss.Center).
		Width(cardWidth)

	var rows []string
	for i := 0; i < len(kpis); i += perRow {
		end := min(i+perRow, len(kpis))
		cards := make([]string, 0, perRow)
		for _, k := range kpis[i:end] {
			cards = append(cards, card.Render(
				valueStyle.Render(k.value)+"\n"+labelStyle.Render(truncate(k.label, cardWidth))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderProgress renders the share of paid month slots as a bar.
func (m Model) renderProgress() string {
	styles := m.theme.Styles()
	fin := payments.Summarize(m.snapshot.Roster, len(m.months), m.fee)

	label := "Progresso dos Pagamentos "
	pct := fmt.Sprintf(" %5.1f%%", fin.PercentPaid)
	barWidth := max(m.width-lipgloss.Width(label)-lipgloss.Width(pct)-2, 10)
	bar := progressBar(fin.PercentPaid, barWidth)

	color := m.theme.Danger
	switch {
	case fin.PercentPaid > 70:
		color = m.theme.Success
	case fin.PercentPaid > 40:
		color = m.theme.Warning
	}
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	return " " + styles.Text.Bold(true).Render(label) + barStyle.Render(bar) + styles.Text.Render(pct)
}

// progressBar draws pct (0-100) as a bar of the given width.
func progressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 100)
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// rosterColumns computes column widths for the roster table. When the full
// status messages do not fit, short glyphs are used instead.
type rosterColumns struct {
	name  int
	month int
	paid  int
	short bool
}

func (m Model) rosterColumns(width int) rosterColumns {
	const paidWidth = 13
	full := len([]rune(payments.MessageUpcoming)) + 2
	cols := rosterColumns{month: full, paid: paidWidth}
	if width-paidWidth-len(m.months)*full < 16 {
		cols.short = true
		cols.month = 10
	}
	cols.name = max(width-paidWidth-len(m.months)*cols.month, 8)
	return cols
}

// renderRosterBox renders the filter line and payment table.
func (m Model) renderRosterBox(width, height int) string {
	styles := m.theme.Styles()
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	innerWidth := width - 2
	rows := m.filteredRows()

	var lines []string

	// Filter line
	var nameFilter string
	if m.filtering {
		nameFilter = m.nameFilter.View()
	} else if q := m.nameFilter.Value(); q != "" {
		nameFilter = bg.Render("/"+q, styles.AccentText)
	} else {
		nameFilter = bg.Render("/ filtrar por nome", styles.FaintText)
	}
	lines = append(lines, nameFilter+bg.Spaces(3)+
		bg.Render("Status:", styles.MutedText)+bg.Space()+
		bg.Render(m.statusFilter.String(), styles.AccentText)+bg.Spaces(3)+
		bg.Render(fmt.Sprintf("%d de %d", len(rows), len(m.snapshot.Roster)), styles.FaintText)+
		m.renderLegend(bg, styles, innerWidth))

	if len(m.snapshot.Roster) == 0 {
		lines = append(lines, "", bg.Render("⚠️ Nenhum dado encontrado na tabela de pagamentos", styles.WarningText))
		return m.renderTitledBox("Status dos Pagamentos", strings.Join(lines, "\n"), width, height, true)
	}

	cols := m.rosterColumns(innerWidth)

	// Header row
	header := padRight("Nome do Colaborador", cols.name)
	for _, month := range m.months {
		header += padRight(truncate(payments.MonthLabel(month), cols.month-1), cols.month)
	}
	header += padRight("Pago (R$)", cols.paid)
	lines = append(lines, bg.Render(header, styles.MutedText.Bold(true)))

	visible := max(height-2-len(lines), 1)
	start, end := visibleWindow(len(rows), m.selectedRow, visible)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatRosterRow(rows[i], cols, innerWidth, i == m.selectedRow))
	}

	return m.renderTitledBox("Status dos Pagamentos", strings.Join(lines, "\n"), width, height, true)
}

// renderLegend shows the cell colors on wide terminals.
func (m Model) renderLegend(bg BgStyle, styles Styles, width int) string {
	if width < LayoutCompactWidth {
		return ""
	}
	return bg.Spaces(3) +
		styles.StatusStyle(statusPaid).Render("pago") + bg.Space() +
		styles.StatusStyle(statusOverdue).Render("atrasado") + bg.Space() +
		styles.StatusStyle(statusUpcoming).Render("a vencer")
}

// formatRosterRow formats one collaborator with a colored cell per month.
func (m Model) formatRosterRow(row payments.Row, cols rosterColumns, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	nameStyle := styles.Text
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	var b strings.Builder
	b.WriteString(bg.Render(padRight(truncate(row.Name, cols.name-1), cols.name), nameStyle))
	for i, month := range m.months {
		paid := i < len(row.Paid) && row.Paid[i]
		msg := payments.StatusMessage(paid, month, m.now)
		status := paymentStatus(msg)
		text := msg
		if cols.short {
			text = shortStatus(status)
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.StatusColors[status])).
			Bold(true)
		b.WriteString(bg.Render(padRight(text, cols.month), style))
	}
	b.WriteString(bg.Render(padRight(payments.FormatBRL(row.PaidAmount(m.fee)), cols.paid), nameStyle))

	return bg.Line(b.String(), width)
}
