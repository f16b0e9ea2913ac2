package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the nav bar collapses
	// to the menu hint and the list drops the category column.
	LayoutCompactWidth = 80

	// LayoutDetailWidth caps the product detail modal.
	LayoutDetailWidth = 64
)

// Chrome rows around the page body: nav bar, page title, footer, status.
const chromeRows = 4

// Timing constants.
const (
	// SnapshotPollInterval is how often the UI checks whether the catalog
	// loader has finished.
	SnapshotPollInterval = 100 * time.Millisecond

	// DefaultFrameInterval is the scramble frame period when none is configured.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultStagger separates nav label reveals.
	DefaultStagger = 100 * time.Millisecond
)
