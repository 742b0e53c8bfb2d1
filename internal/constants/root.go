package constants

import "time"

const (
	AppName           = "tempo"
	DefaultConfigPath = "~/.config/tempo/tempo.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MaxTags is the maximum number of tags a task or template may carry
	MaxTags = 5

	// DefaultTimesPerPeriod is the number of completions expected per period
	// when a recurrence rule does not say otherwise
	DefaultTimesPerPeriod = 1

	// SaveDebounce is the trailing window used to coalesce rapid engine
	// mutations into a single store write
	SaveDebounce = 300 * time.Millisecond

	// StatsHistoryEntries is how many history entries the stats view returns
	StatsHistoryEntries = 14
)
