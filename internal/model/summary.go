package model

import "time"

// Row drop reasons reported in LoadSummary.DropReasons.
const (
	DropMissingField     = "missing_field"
	DropUnknownState     = "unknown_state"
	DropBadYear          = "bad_year"
	DropYearOutOfRange   = "year_out_of_range"
	DropUnknownIndicator = "unknown_indicator"
	DropBadValue         = "bad_value"
	DropDuplicate        = "duplicate"
	DropMalformedLine    = "malformed_line"
)

// LoadSummary captures metrics from a single table load.
type LoadSummary struct {
	Source          string              `json:"source"`
	Format          string              `json:"format"`
	Delimiter       string              `json:"delimiter,omitempty"` // CSV sources only
	SHA256          string              `json:"sha256,omitempty"`    // hex digest of the source bytes; empty for database sources
	SnapshotID      string              `json:"snapshot_id"`
	RowsRead        int64               `json:"rows_read"`
	RowsKept        int64               `json:"rows_kept"`
	RowsDropped     int64               `json:"rows_dropped"`
	DropReasons     map[string]int64    `json:"drop_reasons"`
	RowsByIndicator map[Indicator]int64 `json:"rows_by_indicator"`
	Duration        time.Duration       `json:"duration_ns"`
}
