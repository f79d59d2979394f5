package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/statehealth/internal/model"
)

type recordKey struct {
	state     string
	year      int
	indicator model.Indicator
}

type partitionKey struct {
	year      int
	indicator model.Indicator
}

// Table is an immutable, ranked snapshot of the loaded observations.
// All methods are safe for concurrent use.
type Table struct {
	records    []model.HealthRecord // ordered by state, year, indicator
	index      map[recordKey]int
	years      []int
	states     []string
	snapshotID uuid.UUID
	loadedAt   time.Time
}

// NewTable builds a Table from validated records. Duplicate
// (state, year, indicator) observations keep the first occurrence.
// Ranks are recomputed; any Rank already set on the input is ignored.
func NewTable(records []model.HealthRecord) *Table {
	t := &Table{
		index:      make(map[recordKey]int, len(records)),
		snapshotID: uuid.New(),
		loadedAt:   time.Now(),
	}

	seen := make(map[recordKey]bool, len(records))
	for _, r := range records {
		k := recordKey{r.State, r.Year, r.Indicator}
		if seen[k] {
			continue
		}
		seen[k] = true
		r.Rank = 0
		t.records = append(t.records, r)
	}

	assignRanks(t.records)

	sort.Slice(t.records, func(i, j int) bool {
		a, b := t.records[i], t.records[j]
		if a.State != b.State {
			return a.State < b.State
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return indicatorOrder(a.Indicator) < indicatorOrder(b.Indicator)
	})

	yearSet := make(map[int]bool)
	stateSet := make(map[string]bool)
	for i, r := range t.records {
		t.index[recordKey{r.State, r.Year, r.Indicator}] = i
		yearSet[r.Year] = true
		stateSet[r.State] = true
	}
	for y := range yearSet {
		t.years = append(t.years, y)
	}
	sort.Ints(t.years)
	for _, s := range model.AllStates {
		if stateSet[s] {
			t.states = append(t.states, s)
		}
	}
	return t
}

// assignRanks sets Rank within every (year, indicator) partition: value
// descending, ties broken by state ascending, so ranks are always 1..N.
func assignRanks(records []model.HealthRecord) {
	partitions := make(map[partitionKey][]int)
	for i, r := range records {
		k := partitionKey{r.Year, r.Indicator}
		partitions[k] = append(partitions[k], i)
	}
	for _, idx := range partitions {
		sort.Slice(idx, func(a, b int) bool {
			ra, rb := records[idx[a]], records[idx[b]]
			if ra.Value != rb.Value {
				return ra.Value > rb.Value
			}
			return ra.State < rb.State
		})
		for rank, i := range idx {
			records[i].Rank = rank + 1
		}
	}
}

func indicatorOrder(ind model.Indicator) int {
	for i, info := range model.AllIndicators {
		if info.Indicator == ind {
			return i
		}
	}
	return len(model.AllIndicators)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of every record in canonical order.
func (t *Table) Records() []model.HealthRecord {
	out := make([]model.HealthRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Lookup returns the record for an exact state, year and indicator.
func (t *Table) Lookup(state string, year int, ind model.Indicator) (model.HealthRecord, bool) {
	i, ok := t.index[recordKey{state, year, ind}]
	if !ok {
		return model.HealthRecord{}, false
	}
	return t.records[i], true
}

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	return append([]int(nil), t.years...)
}

// LatestYear returns the most recent year present.
func (t *Table) LatestYear() (int, bool) {
	if len(t.years) == 0 {
		return 0, false
	}
	return t.years[len(t.years)-1], true
}

// States returns the distinct states present, in canonical order.
func (t *Table) States() []string {
	return append([]string(nil), t.states...)
}

// SnapshotID identifies this load; a reload always gets a new one.
func (t *Table) SnapshotID() string {
	return t.snapshotID.String()
}

// LoadedAt is when the table was built.
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}
