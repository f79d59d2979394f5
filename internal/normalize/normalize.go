package normalize

import (
	"strings"

	"github.com/gyeh/statehealth/internal/model"
)

// ToRecord validates a raw observation and converts it into a HealthRecord
// with its region derived. Rank is left at zero; it depends on the whole
// table and is assigned after load.
// On failure it returns one of the model.Drop* reasons.
func ToRecord(row model.RawRow) (model.HealthRecord, string, bool) {
	if strings.TrimSpace(row.State) == "" || strings.TrimSpace(row.Year) == "" ||
		strings.TrimSpace(row.Indicator) == "" || strings.TrimSpace(row.Value) == "" {
		return model.HealthRecord{}, model.DropMissingField, false
	}

	state, ok := CanonicalState(row.State)
	if !ok {
		return model.HealthRecord{}, model.DropUnknownState, false
	}
	region, ok := model.RegionOf(state)
	if !ok {
		return model.HealthRecord{}, model.DropUnknownState, false
	}

	year, ok := ParseYear(row.Year)
	if !ok {
		return model.HealthRecord{}, model.DropBadYear, false
	}
	if !YearInRange(year) {
		return model.HealthRecord{}, model.DropYearOutOfRange, false
	}

	ind, ok := model.ParseIndicator(row.Indicator)
	if !ok {
		return model.HealthRecord{}, model.DropUnknownIndicator, false
	}

	value, ok := ParseValue(row.Value)
	if !ok {
		return model.HealthRecord{}, model.DropBadValue, false
	}

	return model.HealthRecord{
		State:     state,
		Year:      year,
		Indicator: ind,
		Value:     value,
		Region:    region,
	}, "", true
}
