package model

// Years covered by the dataset.
const (
	MinYear = 2014
	MaxYear = 2020
)

// RawRow is one observation as read from a source, before validation.
// Wide-form sources emit one RawRow per indicator column.
type RawRow struct {
	Line      int64 // 1-based source line or row number
	State     string
	Year      string
	Indicator string
	Value     string
}

// HealthRecord is one validated observation with its derived attributes.
type HealthRecord struct {
	State     string    `parquet:"state" json:"state"`
	Year      int       `parquet:"year" json:"year"`
	Indicator Indicator `parquet:"indicator" json:"indicator"`
	Value     float64   `parquet:"value" json:"value"`
	Region    Region    `parquet:"region" json:"region"`
	Rank      int       `parquet:"rank" json:"rank"`
}

// ObservationRow mirrors the long-form Parquet input schema. Region and rank
// are derived at load time, so they are not read from the file.
type ObservationRow struct {
	State     string   `parquet:"state"`
	Year      int64    `parquet:"year"`
	Indicator string   `parquet:"indicator"`
	Value     *float64 `parquet:"value,optional"`
}
