package domain

// Alert summarises an under-threshold cohort at the target location for a commander.
type Alert struct {
	Target         Position
	Threshold      float64
	BelowThreshold []string
	Replaced       int
	Unreplaced     []string
}
