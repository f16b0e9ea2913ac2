package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Heading is the scrambled title shown above the page body.
func (p Page) Heading() string {
	switch p {
	case PageAbout:
		return "DISCOVER THE DIGITAL WORLD"
	case PageFeatures:
		return "FEATURES"
	case PageStore:
		return "MERCHANDISE STORE"
	default:
		return "ACCESS DENIED"
	}
}

type pageSection struct {
	title string
	body  []string
}

var homeSections = []pageSection{
	{
		title: "You are not authorized to enter the Room 305",
		body: []string{
			"WARNING: Do NOT click any suspicious links, you could get hacked!",
		},
	},
	{
		title: "Barbecue Studio",
		body: []string{
			"Press m to open the menu, or tab to jump to the footer links.",
			"The store lists pins and stickers you can pick up on site.",
		},
	},
}

var aboutSections = []pageSection{
	{
		title: "Welcome to Access Denied",
		body: []string{
			"Secure the system. Expose the threat.",
			"Access Denied drops you into a digital war where Developers secure and Hackers sabotage.",
		},
	},
}

var featureSections = []pageSection{
	{
		title: "Developers",
		body:  []string{"Patch the network, trace intrusions and keep the servers alive."},
	},
	{
		title: "Hackers",
		body:  []string{"Slip past the firewall, plant backdoors and leak the data first."},
	},
	{
		title: "Find the hidden message",
		body:  []string{"Clues are scattered across the rooms. Piece them together with your team."},
	},
}

// renderPageTitle renders the scrambled heading of the current page.
func (m Model) renderPageTitle() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	text := m.scramble.DisplayOr(titleID, m.page.Heading())
	return bg.Center(styles.AccentText.Bold(true).Render(text), m.width)
}

// renderPage renders the current page body at the given height.
func (m Model) renderPage(height int) string {
	switch m.page {
	case PageStore:
		return m.renderStore(height)
	case PageAbout:
		return m.renderSections(aboutSections, height)
	case PageFeatures:
		return m.renderSections(featureSections, height)
	default:
		return m.renderSections(homeSections, height)
	}
}

// renderSections renders static text sections centered in the body.
func (m Model) renderSections(sections []pageSection, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	width := min(m.width-4, 72)

	var lines []string
	for i, s := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, l := range wrap(s.title, width) {
			lines = append(lines, styles.Text.Bold(true).Render(l))
		}
		for _, para := range s.body {
			for _, l := range wrap(para, width) {
				lines = append(lines, styles.MutedText.Render(l))
			}
		}
	}

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
