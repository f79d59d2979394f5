package model

// Region is one of the four US Census geographic regions.
type Region string

const (
	Northeast Region = "Northeast"
	Midwest   Region = "Midwest"
	South     Region = "South"
	West      Region = "West"
)

// AllRegions lists the regions in canonical order.
var AllRegions = []Region{Northeast, Midwest, South, West}

// AllStates is the canonical, alphabetical list of recognized states.
var AllStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California",
	"Colorado", "Connecticut", "Delaware", "District of Columbia", "Florida",
	"Georgia", "Hawaii", "Idaho", "Illinois", "Indiana",
	"Iowa", "Kansas", "Kentucky", "Louisiana", "Maine",
	"Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota",
	"Ohio", "Oklahoma", "Oregon", "Pennsylvania", "Rhode Island",
	"South Carolina", "South Dakota", "Tennessee", "Texas", "Utah",
	"Vermont", "Virginia", "Washington", "West Virginia", "Wisconsin",
	"Wyoming",
}

var stateRegions = map[string]Region{
	"Connecticut": Northeast, "Maine": Northeast, "Massachusetts": Northeast,
	"New Hampshire": Northeast, "Rhode Island": Northeast, "Vermont": Northeast,
	"New York": Northeast, "New Jersey": Northeast, "Pennsylvania": Northeast,

	"Illinois": Midwest, "Indiana": Midwest, "Michigan": Midwest, "Ohio": Midwest,
	"Wisconsin": Midwest, "Iowa": Midwest, "Kansas": Midwest, "Minnesota": Midwest,
	"Missouri": Midwest, "Nebraska": Midwest, "North Dakota": Midwest, "South Dakota": Midwest,

	"Delaware": South, "District of Columbia": South, "Florida": South, "Georgia": South,
	"Maryland": South, "North Carolina": South, "South Carolina": South, "Virginia": South,
	"West Virginia": South, "Alabama": South, "Kentucky": South, "Mississippi": South,
	"Tennessee": South, "Arkansas": South, "Louisiana": South, "Oklahoma": South, "Texas": South,

	"Arizona": West, "Colorado": West, "Idaho": West, "Montana": West, "Nevada": West,
	"New Mexico": West, "Utah": West, "Wyoming": West, "Alaska": West, "California": West,
	"Hawaii": West, "Oregon": West, "Washington": West,
}

// StateAbbreviations maps USPS codes to canonical state names.
var StateAbbreviations = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "DC": "District of Columbia", "FL": "Florida",
	"GA": "Georgia", "HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana",
	"IA": "Iowa", "KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire",
	"NJ": "New Jersey", "NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin",
	"WY": "Wyoming",
}

// RegionOf returns the region for a canonical state name.
// Names not in AllStates return ok=false.
func RegionOf(state string) (Region, bool) {
	r, ok := stateRegions[state]
	return r, ok
}

// StatesIn returns the canonical states belonging to r, alphabetically.
func StatesIn(r Region) []string {
	var out []string
	for _, s := range AllStates {
		if stateRegions[s] == r {
			out = append(out, s)
		}
	}
	return out
}
