package csvread

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/statehealth/internal/model"
)

// Format is the detected layout of a health indicator CSV.
type Format string

const (
	// FormatLong has one row per observation: state,year,indicator,value.
	FormatLong Format = "long"
	// FormatWide has one row per (state, year) and one column per indicator.
	FormatWide Format = "wide"
)

// ErrNoHeader is returned when the source is empty.
var ErrNoHeader = errors.New("csv source has no header row")

type wideCol struct {
	idx       int
	indicator model.Indicator
}

// Reader streams RawRows out of a long- or wide-form CSV. Wide rows are
// expanded into one RawRow per indicator column.
type Reader struct {
	csv    *csv.Reader
	format Format
	delim  rune
	line   int64

	stateIdx, yearIdx, indicatorIdx, valueIdx int
	wideCols                                  []wideCol
	pending                                   []model.RawRow
}

// NewReader reads the header from r, sniffs the delimiter and detects the
// format. The header must name state and year plus either indicator and
// value columns (long form) or at least one indicator column (wide form).
func NewReader(r io.Reader) (*Reader, error) {
	bufReader := bufio.NewReaderSize(r, 64*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	delim := sniffDelimiter(bufReader)

	reader := csv.NewReader(bufReader)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	cr := &Reader{
		csv:          reader,
		delim:        delim,
		stateIdx:     -1,
		yearIdx:      -1,
		indicatorIdx: -1,
		valueIdx:     -1,
	}
	if err := cr.readHeader(); err != nil {
		return nil, err
	}
	return cr, nil
}

// sniffDelimiter picks the most frequent of ';', tab and ',' in the first
// line. Wide exports use ';' so that decimal commas survive.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	best, bestCount := ',', bytes.Count(peek, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if c := bytes.Count(peek, []byte(string(d))); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err == io.EOF {
		return ErrNoHeader
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	r.line++

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "state":
			r.stateIdx = i
		case "year":
			r.yearIdx = i
		case "indicator":
			r.indicatorIdx = i
		case "value":
			r.valueIdx = i
		default:
			if ind, ok := model.ParseIndicator(h); ok {
				r.wideCols = append(r.wideCols, wideCol{idx: i, indicator: ind})
			}
		}
	}

	if r.stateIdx < 0 || r.yearIdx < 0 {
		return fmt.Errorf("header %q: missing state or year column", strings.Join(header, string(r.delim)))
	}
	switch {
	case r.indicatorIdx >= 0 && r.valueIdx >= 0:
		r.format = FormatLong
	case len(r.wideCols) > 0:
		r.format = FormatWide
	default:
		return fmt.Errorf("header %q: need indicator and value columns or at least one indicator column",
			strings.Join(header, string(r.delim)))
	}
	return nil
}

// Format returns the detected CSV format.
func (r *Reader) Format() string {
	return string(r.format)
}

// Delimiter returns the sniffed field separator.
func (r *Reader) Delimiter() rune {
	return r.delim
}

// Next returns the next observation, or io.EOF when done.
// A malformed record is reported as a *LineError; the reader stays usable
// and the caller may keep calling Next.
func (r *Reader) Next() (model.RawRow, error) {
	if len(r.pending) > 0 {
		row := r.pending[0]
		r.pending = r.pending[1:]
		return row, nil
	}

	rec, err := r.csv.Read()
	if err == io.EOF {
		return model.RawRow{}, io.EOF
	}
	r.line++
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return model.RawRow{Line: r.line}, &LineError{Line: r.line, Err: pe}
		}
		return model.RawRow{}, fmt.Errorf("read csv at line %d: %w", r.line, err)
	}

	if r.format == FormatLong {
		return model.RawRow{
			Line:      r.line,
			State:     field(rec, r.stateIdx),
			Year:      field(rec, r.yearIdx),
			Indicator: field(rec, r.indicatorIdx),
			Value:     field(rec, r.valueIdx),
		}, nil
	}

	state, year := field(rec, r.stateIdx), field(rec, r.yearIdx)
	for _, wc := range r.wideCols {
		r.pending = append(r.pending, model.RawRow{
			Line:      r.line,
			State:     state,
			Year:      year,
			Indicator: string(wc.indicator),
			Value:     field(rec, wc.idx),
		})
	}
	return r.Next()
}

// Close is a no-op; the caller owns the underlying reader.
func (r *Reader) Close() error {
	return nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// LineError reports a record that could not be split into fields.
type LineError struct {
	Line int64
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
