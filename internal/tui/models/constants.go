package models

// Shared constants for the TUI models
const (
	MinimalWidth  = 80
	MinimalHeight = 24

	// Glamour rendering width
	GlamourRenderWidth = 70

	// How many evaluated lines the history keeps
	HistoryLimit = 200
)
