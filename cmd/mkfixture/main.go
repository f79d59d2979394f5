// mkfixture writes a deterministic synthetic health-indicators dataset for
// tests and demos: every state, year and indicator, optionally with a
// sprinkling of rows the loader must drop.
// Usage: go run ./cmd/mkfixture --out testdata/us_health_states.csv --format long --dirty
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/statehealth/internal/model"
)

// base values per indicator; each state drifts around these.
var base = map[model.Indicator]float64{
	model.ObesityRate:             30,
	model.SmokingRate:             17,
	model.PhysicallyUnhealthyDays: 3.9,
	model.MentallyUnhealthyDays:   4.2,
}

func main() {
	out := flag.String("out", "testdata/us_health_states.csv", "output file")
	format := flag.String("format", "long", "output format: long, wide or parquet")
	seed := flag.Uint64("seed", 2014, "random seed")
	dirty := flag.Bool("dirty", false, "append rows that fail validation (csv formats only)")
	flag.Parse()

	rows := generate(*seed)

	var err error
	switch *format {
	case "long":
		err = writeLong(*out, rows, *dirty)
	case "wide":
		err = writeWide(*out, rows, *dirty)
	case "parquet":
		err = writeParquet(*out, rows)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkfixture: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d observations (%s) to %s\n", len(rows), *format, *out)
}

func generate(seed uint64) []model.ObservationRow {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var rows []model.ObservationRow
	for _, state := range model.AllStates {
		for _, info := range model.AllIndicators {
			level := base[info.Indicator] * (0.8 + 0.4*rng.Float64())
			for y := model.MinYear; y <= model.MaxYear; y++ {
				level *= 0.98 + 0.05*rng.Float64()
				v := math.Round(level*10) / 10
				rows = append(rows, model.ObservationRow{
					State:     state,
					Year:      int64(y),
					Indicator: string(info.Indicator),
					Value:     &v,
				})
			}
		}
	}
	return rows
}

func dirtyLong() [][]string {
	return [][]string{
		{"Atlantis", "2018", "ObesityRate", "22.0"},
		{"Texas", "1999", "ObesityRate", "30.0"},
		{"Texas", "twenty", "ObesityRate", "30.0"},
		{"Ohio", "2018", "BloodPressure", "120"},
		{"Ohio", "2018", "SmokingRate", "-1"},
		{"Ohio", "2018", "SmokingRate", ""},
		{"Alabama", "2014", "ObesityRate", "99.9"}, // duplicate, first occurrence wins
	}
}

func writeLong(path string, rows []model.ObservationRow, dirty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"State", "Year", "Indicator", "Value"})
	for _, r := range rows {
		w.Write([]string{r.State, strconv.FormatInt(r.Year, 10), r.Indicator, strconv.FormatFloat(*r.Value, 'f', -1, 64)})
	}
	if dirty {
		w.WriteAll(dirtyLong())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// writeWide uses the semicolon-separated, decimal-comma layout of the
// published dataset.
func writeWide(path string, rows []model.ObservationRow, dirty bool) error {
	type key struct {
		state string
		year  int64
	}
	values := make(map[key]map[string]float64)
	var order []key
	for _, r := range rows {
		k := key{r.State, r.Year}
		if values[k] == nil {
			values[k] = make(map[string]float64)
			order = append(order, k)
		}
		values[k][r.Indicator] = *r.Value
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	header := []string{"State", "Year"}
	for _, info := range model.AllIndicators {
		header = append(header, info.WideColumn)
	}
	w.Write(header)
	for _, k := range order {
		rec := []string{k.state, strconv.FormatInt(k.year, 10)}
		for _, info := range model.AllIndicators {
			v := strconv.FormatFloat(values[k][string(info.Indicator)], 'f', -1, 64)
			rec = append(rec, strings.Replace(v, ".", ",", 1))
		}
		w.Write(rec)
	}
	if dirty {
		w.Write([]string{"Atlantis", "2018", "22,0", "15,0", "3,0", "4,0"})
		w.Write([]string{"Ohio", "2031", "30,0", "20,0", "4,0", "4,5"})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeParquet(path string, rows []model.ObservationRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := goparquet.NewGenericWriter[model.ObservationRow](f)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return f.Close()
}
