package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

func (m Model) detailOpen() bool {
	return m.engine != nil && m.engine.Selected() != nil
}

// detailWidth is the modal width for the current terminal.
func (m Model) detailWidth() int {
	return max(min(LayoutDetailWidth, m.width-4), 20)
}

// resizeDetail fits the description viewport to the modal.
func (m *Model) resizeDetail() {
	m.detail.Width = m.detailWidth() - 6
	m.detail.Height = max(min(m.height-16, 10), 3)
	if p := m.selected(); p != nil {
		m.detail.SetContent(m.detailBody(*p))
	}
}

func (m Model) selected() *catalog.Product {
	if m.engine == nil {
		return nil
	}
	return m.engine.Selected()
}

// handleDetailKey processes input while the product modal is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.engine.Selected()

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Confirm):
		m.engine.ClearSelection()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleFavorite):
		m.engine.ToggleFavorite(p.Title)
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.FindInStore):
		m.status = m.locate(p.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// detailBody is the scrollable description text.
func (m Model) detailBody(p catalog.Product) string {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = "No description."
	}
	return strings.Join(wrap(desc, max(m.detail.Width, 10)), "\n")
}

// renderDetail renders the product modal over the page.
func (m Model) renderDetail() string {
	p := m.engine.Selected()
	styles := m.theme.Styles()

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Width(10)
	row := func(label, value string, style lipgloss.Style) string {
		return labelStyle.Render(label) + style.Render(value)
	}

	fav := styles.FaintText.Render(unfavoriteMark + " Not a favorite")
	if m.engine.IsFavorite(p.Title) {
		fav = styles.FavoriteText.Render(favoriteMark + " Favorite")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.Title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(m.detailWidth()-6, 1))))
	b.WriteString("\n")
	b.WriteString(row("Price", p.Price.String(), styles.PriceText))
	b.WriteString("\n")
	if p.Category != "" {
		b.WriteString(labelStyle.Render("Category"))
		b.WriteString(styles.TagStyle(p.Category).Render(p.Category))
		b.WriteString("\n")
	}
	if p.Room != "" {
		b.WriteString(row("Room", p.Room, styles.Text))
		b.WriteString("\n")
	}
	if p.ImageURL != "" {
		b.WriteString(row("Image", truncate(p.ImageURL, m.detailWidth()-16), styles.InfoText))
		b.WriteString("\n")
	}
	b.WriteString(row("Status", "", styles.Text))
	b.WriteString(fav)
	b.WriteString("\n\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(styles.InfoText.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("space favorite · r find in store · j/k scroll · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(m.detailWidth()).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
