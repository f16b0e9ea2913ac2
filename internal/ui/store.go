package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

const (
	favoriteMark   = "★"
	unfavoriteMark = "☆"
)

// handleStoreKey processes input on the store page.
func (m Model) handleStoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	visible := m.engine.DeriveVisible()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.engine.Query().Search != "" {
			m.search.SetValue("")
			m.engine.SetSearch("")
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.CycleCategory):
		m.engine.SetCategory(nextCategory(m.engine.Catalog().Categories(), m.engine.Query().Category))
		m.cursor = 0

	case key.Matches(msg, m.keys.CycleSort):
		if err := m.engine.SetSort(m.engine.Query().Sort.Next()); err != nil {
			m.logger.Warn("cycle sort", zap.Error(err))
		}

	case key.Matches(msg, m.keys.FavoritesOnly):
		m.engine.ToggleFavoritesOnly()
		m.cursor = 0

	case key.Matches(msg, m.keys.ToggleFavorite):
		if p, ok := m.current(visible); ok {
			if m.engine.ToggleFavorite(p.Title) {
				m.status = fmt.Sprintf("Added %s to favorites.", p.Title)
			} else {
				m.status = fmt.Sprintf("Removed %s from favorites.", p.Title)
			}
		}

	case key.Matches(msg, m.keys.FindInStore):
		if p, ok := m.current(visible); ok {
			m.status = m.locate(p.Title)
		}

	case key.Matches(msg, m.keys.Confirm):
		if p, ok := m.current(visible); ok {
			m.engine.Select(&p)
			m.detail.SetContent(m.detailBody(p))
			m.detail.GotoTop()
		}

	case key.Matches(msg, m.keys.Up):
		m.cursor--

	case key.Matches(msg, m.keys.Down):
		m.cursor++

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(visible) - 1
	}

	m.clampCursor()
	return m, nil
}

// handleSearchKey routes input to the search box while it has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.engine != nil {
			m.engine.SetSearch(m.search.Value())
		}
		m.cursor = 0
		return m, cmd
	}

	if m.engine != nil {
		m.engine.SetSearch("")
	}
	m.cursor = 0
	return m, nil
}

// current returns the product under the cursor.
func (m Model) current(visible []catalog.Product) (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return catalog.Product{}, false
	}
	return visible[m.cursor], true
}

// clampCursor keeps the cursor on a visible row.
func (m *Model) clampCursor() {
	if m.engine == nil {
		m.cursor = 0
		return
	}
	n := len(m.engine.DeriveVisible())
	m.cursor = max(min(m.cursor, n-1), 0)
}

// locate returns the status line for "find in store".
func (m Model) locate(title string) string {
	if hint, ok := m.engine.Locate(title); ok {
		return hint
	}
	return fmt.Sprintf("No room is listed for %s.", title)
}

// nextCategory returns the category after current, wrapping to the first.
// Unknown categories restart the cycle.
func nextCategory(categories []string, current string) string {
	if len(categories) == 0 {
		return catalog.All
	}
	i := slices.Index(categories, current)
	return categories[(i+1)%len(categories)]
}

// renderStore renders the filter bar and the product list.
func (m Model) renderStore(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)

	switch {
	case !m.snapshot.Loaded || m.engine == nil:
		msg := styles.MutedText.Render("Loading catalog...")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
	case m.snapshot.Failed() && m.engine.Catalog().Len() == 0:
		msg := styles.DangerText.Render("Catalog unavailable") + "\n" +
			styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), m.width-4))
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
	}

	bar := m.renderFilterBar()
	boxHeight := max(height-lipgloss.Height(bar), 3)
	visible := m.engine.DeriveVisible()

	focused := !m.searching
	boxBg := m.theme.SurfaceAlt
	if focused {
		boxBg = m.theme.FocusBg
	}

	var content string
	if len(visible) == 0 {
		bg := NewBgStyle(boxBg)
		content = bg.Render("No products match the current filters.", m.theme.Styles().MutedText)
	} else {
		content = m.renderProductRows(visible, m.width-2, boxHeight-2, boxBg)
	}

	title := fmt.Sprintf("Products (%s)", countLabel(len(visible), "item"))
	box := m.renderTitledBox(title, content, m.width, boxHeight, focused)
	return bar + "\n" + box
}

// renderFilterBar renders category, sort, favorites toggle and search.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	q := m.engine.Query()

	favLabel := "Only Favorites"
	if q.FavoritesOnly {
		favLabel = "Show All"
	}

	parts := []string{
		bg.Render("c", styles.WarningText) + bg.Space() + styles.TagStyle(q.Category).Render(q.Category),
		bg.Render("s", styles.WarningText) + bg.Space() + bg.Render(q.Sort.Label(), styles.Text),
		bg.Render("v", styles.WarningText) + bg.Space() + bg.Render(favLabel, styles.FavoriteText),
	}

	search := m.search.View()
	if !m.searching && q.Search == "" {
		search = bg.Render("/ search", styles.FaintText)
	}
	parts = append(parts, search)

	return bg.FillLine(bg.Spaces(1)+bg.Join(parts, "   "), m.width)
}

// renderProductRows renders the visible slice of the list, keeping the
// cursor in view.
func (m Model) renderProductRows(items []catalog.Product, width, height int, rowBg string) string {
	height = max(height, 1)
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.cursor && !m.searching
		bgColor := rowBg
		if selected {
			bgColor = m.theme.SelectionBg
		}
		row := m.formatProductRow(items[i], width, bgColor, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(row))
	}
	return strings.Join(lines, "\n")
}

// formatProductRow formats one product.
// Format: "★ Title  [Category]  ₱25–30  Room 306"
func (m Model) formatProductRow(p catalog.Product, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	markStyle, titleStyle, priceStyle, roomStyle := styles.FaintText, styles.Text, styles.PriceText, styles.MutedText
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		markStyle, titleStyle, priceStyle, roomStyle = sel, sel.Bold(true), sel, sel
	}

	mark := bg.Render(unfavoriteMark, markStyle)
	if m.engine.IsFavorite(p.Title) {
		mark = bg.Render(favoriteMark, styles.FavoriteText)
	}

	price := p.Price.String()
	room := p.Room
	chip := ""
	if m.width >= LayoutCompactWidth && p.Category != "" {
		chip = styles.TagStyle(p.Category).Render(p.Category)
	}

	fixed := 2 + lipgloss.Width(price) + 2 + lipgloss.Width(room) + 2
	if chip != "" {
		fixed += lipgloss.Width(chip) + 2
	}
	titleWidth := max(width-fixed-1, 8)

	var b strings.Builder
	b.WriteString(bg.Space())
	b.WriteString(mark)
	b.WriteString(bg.Space())
	title := truncate(p.Title, titleWidth)
	b.WriteString(bg.Render(title, titleStyle))
	b.WriteString(bg.Spaces(titleWidth - lipgloss.Width(title) + 2))
	if chip != "" {
		b.WriteString(chip)
		b.WriteString(bg.Spaces(2))
	}
	b.WriteString(bg.Render(price, priceStyle))
	if room != "" {
		b.WriteString(bg.Spaces(2))
		b.WriteString(bg.Render(room, roomStyle))
	}
	return b.String()
}

// renderStatus renders the bottom line: the last message, or key hints.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var text string
	switch {
	case m.status != "":
		style := styles.InfoText
		if m.snapshot.Failed() && strings.HasPrefix(m.status, "Catalog unavailable") {
			style = styles.DangerText
		}
		text = bg.Render(truncate(m.status, m.width-2), style)
	case m.searching:
		text = bg.Render("enter apply · esc clear", styles.FaintText)
	default:
		hints := []string{"? help", "m menu", "T theme", "q quit"}
		if m.page == PageStore {
			hints = append([]string{"space favorite", "enter view", "r find"}, hints...)
		}
		text = bg.Render(strings.Join(hints, " · "), styles.FaintText)
	}
	return bg.FillLine(bg.Space()+text, m.width)
}
