package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.view == viewDetail {
		return m.renderDetail()
	}
	return m.renderBrowse()
}

func (m Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	switch {
	case m.sel.Err:
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render("  Fetch failed."))
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("  Press / and search again to retry."))
		b.WriteString("\n")
	case m.sel.Initial:
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("  Loading catalog..."))
		b.WriteString("\n")
	case m.sel.Count == 0:
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("  No matches for %q.", m.sel.Term)))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderTable())
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	parts := []string{m.styles.Logo.Render("starcat")}

	switch {
	case m.pending:
		parts = append(parts, m.spin.View()+m.styles.WarningText.Render("fetching"))
	case m.sel.Err:
		parts = append(parts, m.styles.DangerText.Render("ERROR"))
	case m.sel.Initial:
		parts = append(parts, m.styles.WarningText.Render("connecting"))
	default:
		term := m.sel.Term
		if term == "" {
			term = "(all)"
		}
		parts = append(parts,
			m.styles.MutedText.Render("term:")+" "+m.styles.Text.Render(term),
			m.styles.MutedText.Render("matches:")+" "+m.styles.Text.Render(fmt.Sprintf("%d", m.sel.Count)),
			m.styles.MutedText.Render("page:")+" "+m.styles.Text.Render(m.pageIndicator()),
			m.styles.MutedText.Render("size:")+" "+m.styles.Text.Render(fmt.Sprintf("%d", m.sel.PageSize)),
		)
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	return m.styles.Header.Width(width).Render(strings.Join(parts, "  "))
}

func (m Model) pageIndicator() string {
	pages := m.sel.PagesCount()
	if pages == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", m.sel.Page, pages)
}

func (m Model) renderTable() string {
	var b strings.Builder

	nameWidth := 24
	header := fmt.Sprintf("  %-*s %-16s %-20s %12s", nameWidth, "NAME", "CLIMATE", "TERRAIN", "POPULATION")
	b.WriteString(m.styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, rec := range m.rows() {
		row := fmt.Sprintf("  %-*s %-16s %-20s %12s",
			nameWidth, truncate(rec.Name, nameWidth),
			truncate(rec.Climate, 16),
			truncate(rec.Terrain, 20),
			truncate(rec.Population, 12),
		)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(row))
		} else {
			b.WriteString(m.styles.Text.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	help := "/ search  ←/→ page  ↑/↓ select  enter detail  s size  t theme  q quit"
	width := m.width
	if width <= 0 {
		width = 80
	}
	return m.styles.Footer.Width(width).Render(help)
}

func (m Model) renderDetail() string {
	var body string
	switch {
	case m.detailBusy:
		body = m.spin.View() + m.styles.MutedText.Render(" loading record...")
	case m.detailErr != nil:
		body = m.styles.DangerText.Render("Record fetch failed.") + "\n" +
			m.styles.MutedText.Render(m.detailErr.Error())
	default:
		body = m.renderRecord()
	}

	box := m.styles.Detail.Render(body)
	footer := m.styles.Footer.Render("esc back  ctrl+c quit")
	return lipgloss.JoinVertical(lipgloss.Left, box, footer)
}

func (m Model) renderRecord() string {
	rec := m.detail
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(rec.Name))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Climate", rec.Climate},
		{"Terrain", rec.Terrain},
		{"Population", rec.Population},
		{"Diameter", rec.Diameter},
		{"Gravity", rec.Gravity},
		{"Orbital period", rec.OrbitalPeriod},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%-16s", f.label)))
		b.WriteString(m.styles.Text.Render(f.value))
		b.WriteString("\n")
	}
	if rec.Description != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Render(rec.Description))
		b.WriteString("\n")
	}
	return b.String()
}
