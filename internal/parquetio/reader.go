package parquetio

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
)

const readBatchSize = 256

// Reader wraps a parquet GenericReader and yields long-form observations as
// RawRows, so Parquet input goes through the same validation as CSV.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[model.ObservationRow]
	buf    []model.ObservationRow
	n, pos int
	rowNum int64
	done   bool
}

// Open opens a Parquet file, validates its schema and returns a streaming Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if err := ValidateSchema(pf.Schema()); err != nil {
		f.Close()
		return nil, err
	}

	r := parquet.NewGenericReader[model.ObservationRow](pf)
	return &Reader{file: f, reader: r, buf: make([]model.ObservationRow, readBatchSize)}, nil
}

// NumRows returns the total number of rows in the Parquet file.
func (r *Reader) NumRows() int64 {
	return r.reader.NumRows()
}

// Format names the source format for load summaries.
func (r *Reader) Format() string {
	return "parquet"
}

// Next returns the next observation, or io.EOF when done.
func (r *Reader) Next() (model.RawRow, error) {
	for r.pos >= r.n {
		if r.done {
			return model.RawRow{}, io.EOF
		}
		n, err := r.reader.Read(r.buf)
		r.n, r.pos = n, 0
		if err == io.EOF {
			r.done = true
		} else if err != nil {
			return model.RawRow{}, fmt.Errorf("read parquet rows: %w", err)
		}
	}

	obs := r.buf[r.pos]
	r.pos++
	r.rowNum++

	row := model.RawRow{
		Line:      r.rowNum,
		State:     obs.State,
		Year:      strconv.FormatInt(obs.Year, 10),
		Indicator: obs.Indicator,
	}
	if obs.Value != nil {
		row.Value = normalize.FormatValue(*obs.Value)
	}
	return row, nil
}

// Close releases all resources.
func (r *Reader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
