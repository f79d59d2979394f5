package normalize

import (
	"strconv"
	"strings"

	"github.com/gyeh/statehealth/internal/model"
)

// ParseYear parses a year cell. "2018" and "2018.0" are both accepted.
// Returns ok=false if the input is empty or not an integer.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimSuffix(s, ".0")
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// YearInRange reports whether y falls inside the dataset's coverage.
func YearInRange(y int) bool {
	return y >= model.MinYear && y <= model.MaxYear
}
