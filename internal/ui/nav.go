package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bbqstudio/merchterm/internal/scramble"
)

// link is a nav bar or footer entry. External links have no page.
type link struct {
	id       string
	label    string
	page     Page
	external bool
}

var navLinks = []link{
	{id: "nav.home", label: "HOME", page: PageHome},
	{id: "nav.about", label: "ABOUT", page: PageAbout},
	{id: "nav.features", label: "FEATURES", page: PageFeatures},
	{id: "nav.store", label: "STORE", page: PageStore},
	{id: "nav.discord", label: "DISCORD", external: true},
	{id: "nav.instagram", label: "INSTAGRAM", external: true},
}

var footerLinks = []link{
	{id: "footer.about", label: "About", page: PageAbout},
	{id: "footer.features", label: "Features", page: PageFeatures},
	{id: "footer.store", label: "Store", page: PageStore},
}

const titleID = "page.title"

// navLabels lists the nav bar entries in display order for the staggered
// intro reveal.
func navLabels() []scramble.Label {
	labels := make([]scramble.Label, len(navLinks))
	for i, l := range navLinks {
		labels[i] = scramble.Label{ID: l.id, Text: l.label}
	}
	return labels
}

// handleNavKey processes input while the nav menu has focus.
func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.navCursor = wrapIndex(m.navCursor-1, len(navLinks))
		return m, m.hoverNav()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.navCursor = wrapIndex(m.navCursor+1, len(navLinks))
		return m, m.hoverNav()
	case key.Matches(msg, m.keys.Confirm):
		return m.follow(navLinks[m.navCursor])
	case key.Matches(msg, m.keys.Escape):
		m.focus = focusContent
	}
	return m, nil
}

// handleFooterKey processes input while the footer links have focus.
func (m Model) handleFooterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.footerCursor = wrapIndex(m.footerCursor-1, len(footerLinks))
		return m, m.hoverFooter()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.footerCursor = wrapIndex(m.footerCursor+1, len(footerLinks))
		return m, m.hoverFooter()
	case key.Matches(msg, m.keys.Confirm):
		return m.follow(footerLinks[m.footerCursor])
	case key.Matches(msg, m.keys.Escape):
		m.focus = focusContent
	}
	return m, nil
}

// hoverNav re-scrambles the label under the nav cursor.
func (m Model) hoverNav() tea.Cmd {
	l := navLinks[m.navCursor]
	return m.reveal(l.id, l.label)
}

// hoverFooter re-scrambles the label under the footer cursor.
func (m Model) hoverFooter() tea.Cmd {
	l := footerLinks[m.footerCursor]
	return m.reveal(l.id, l.label)
}

// follow activates a link. Social links have no destination in a terminal,
// so they only leave a note in the status line.
func (m Model) follow(l link) (tea.Model, tea.Cmd) {
	if l.external {
		m.status = l.label + " is not linked from the terminal storefront."
		return m, nil
	}
	m.focus = focusContent
	cmd := m.navigate(l.page)
	return m, cmd
}

// navigate switches pages and scrambles in the new heading.
func (m *Model) navigate(page Page) tea.Cmd {
	m.page = page
	m.status = ""
	return m.revealTitle()
}

func (m Model) revealTitle() tea.Cmd {
	return m.reveal(titleID, m.page.Heading())
}

// renderNav renders the top bar: logo, then the scrambling nav labels.
func (m Model) renderNav() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("BARBECUE STUDIO", styles.Logo)}
	if m.width < LayoutCompactWidth && m.focus != focusNav {
		parts = append(parts, bg.Render("m menu", styles.FaintText))
		return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	}

	for i, l := range navLinks {
		text := m.scramble.DisplayOr(l.id, l.label)
		style := styles.MutedText
		switch {
		case m.focus == focusNav && i == m.navCursor:
			style = lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Bold(true)
		case !l.external && l.page == m.page:
			style = styles.AccentText.Bold(true)
		}
		parts = append(parts, style.Render(text))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderFooter renders the footer links and the studio name.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := make([]string, 0, len(footerLinks)+1)
	for i, l := range footerLinks {
		text, started := m.scramble.Display(l.id)
		if !started {
			text = l.label
		}
		if m.focus == focusFooter && i == m.footerCursor {
			parts = append(parts, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Render(text))
			continue
		}
		parts = append(parts, bg.Render(text, styles.MutedText))
	}
	parts = append(parts, bg.Render("· Barbecue Studio", styles.FaintText))
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}

// wrapIndex keeps i within [0, n) with wrap-around.
func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
