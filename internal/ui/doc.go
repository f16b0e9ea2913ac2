// Package ui is the Bubble Tea front end of the merch storefront.
//
// # Layout
//
// Every page shares the same chrome: a nav bar (logo plus the HOME, ABOUT,
// FEATURES, STORE, DISCORD and INSTAGRAM labels), the scrambled page
// heading, the page body, the footer links and a status line. Help and the
// product detail are modal overlays rendered with lipgloss.Place.
//
// # Scramble labels
//
// Nav labels, footer links and page headings reveal through a
// scramble.Engine. Each reveal returns a Ticket; a frameMsg carrying it is
// scheduled with tea.Tick and calls Step when it arrives, so the Bubble Tea
// loop is the frame scheduler. Restarting a label bumps its generation and
// the old ticks fall through Step without effect.
//
// # Store page
//
// The store page drives a storefront.Engine built from the first loaded
// state.Snapshot. Filters, sort and favorites go through the engine, and
// the visible list is re-derived on every render.
//
// # Key Bindings
//
//   - m: Toggle the nav menu (h/l move, enter opens, esc closes)
//   - tab: Focus the footer links
//   - /: Search products (enter applies, esc clears)
//   - c / s / v: Cycle category / cycle price sort / favorites only
//   - space: Toggle favorite
//   - enter: Product detail
//   - r: Find in store
//   - j/k, g/G: Move, top, bottom
//   - T: Cycle theme
//   - ?: Help
//   - q or ctrl+c: Quit
package ui
