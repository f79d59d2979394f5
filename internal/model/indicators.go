package model

import (
	"regexp"
	"strings"
)

// Indicator identifies one tracked health metric.
type Indicator string

const (
	ObesityRate             Indicator = "ObesityRate"
	SmokingRate             Indicator = "SmokingRate"
	PhysicallyUnhealthyDays Indicator = "PhysicallyUnhealthyDays"
	MentallyUnhealthyDays   Indicator = "MentallyUnhealthyDays"
)

// IndicatorInfo describes how an indicator is named in source files and charts.
type IndicatorInfo struct {
	Indicator  Indicator
	WideColumn string // header in the wide-form CSV, e.g. "Adult obesity [in %]"
	LegacyKey  string // column key used by the first dashboard release
	Label      string // e.g. "Obesity Rate"
	Unit       string // "%" or "days"
}

// AllIndicators lists the supported indicators in canonical order.
var AllIndicators = []IndicatorInfo{
	{Indicator: ObesityRate, WideColumn: "Adult obesity [in %]", LegacyKey: "Adult.obesity..in...", Label: "Obesity Rate", Unit: "%"},
	{Indicator: SmokingRate, WideColumn: "Adult smoking [in %]", LegacyKey: "Adult.smoking..in...", Label: "Smoking Rate", Unit: "%"},
	{Indicator: PhysicallyUnhealthyDays, WideColumn: "Physically Unhealthy Days", LegacyKey: "Physical.unhealthy.days", Label: "Physically Unhealthy Days", Unit: "days"},
	{Indicator: MentallyUnhealthyDays, WideColumn: "Mentally Unhealthy Days", LegacyKey: "Mental.unhealthy.days", Label: "Mentally Unhealthy Days", Unit: "days"},
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

func indicatorKey(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

var indicatorAliases = func() map[string]Indicator {
	m := make(map[string]Indicator)
	for _, info := range AllIndicators {
		for _, alias := range []string{string(info.Indicator), info.WideColumn, info.LegacyKey, info.Label} {
			m[indicatorKey(alias)] = info.Indicator
		}
	}
	return m
}()

// ParseIndicator resolves an indicator from its canonical name, its wide-form
// column header, its legacy key or its label. Matching ignores case,
// whitespace and punctuation.
func ParseIndicator(s string) (Indicator, bool) {
	ind, ok := indicatorAliases[indicatorKey(s)]
	return ind, ok
}

// Info returns the descriptor for i, or ok=false for an unknown indicator.
func (i Indicator) Info() (IndicatorInfo, bool) {
	for _, info := range AllIndicators {
		if info.Indicator == i {
			return info, true
		}
	}
	return IndicatorInfo{}, false
}

// Valid reports whether i is one of AllIndicators.
func (i Indicator) Valid() bool {
	_, ok := i.Info()
	return ok
}

// Label returns the human-readable name, falling back to the raw value.
func (i Indicator) Label() string {
	if info, ok := i.Info(); ok {
		return info.Label
	}
	return string(i)
}

// AxisLabel returns the label with its unit for rate indicators,
// e.g. "Obesity Rate (%)".
func (i Indicator) AxisLabel() string {
	info, ok := i.Info()
	if !ok {
		return "Value"
	}
	if info.Unit == "%" {
		return info.Label + " (%)"
	}
	return info.Label
}
