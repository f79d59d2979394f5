package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gyeh/statehealth/internal/csvread"
	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
	"github.com/gyeh/statehealth/internal/parquetio"
)

// Source yields raw observations for Load. Next returns io.EOF when done.
// A *csvread.LineError from Next marks a single malformed record; any other
// error aborts the load.
type Source interface {
	Next() (model.RawRow, error)
	Close() error
}

// Optional Source metadata picked up by Load for the summary.
type (
	formatter     interface{ Format() string }
	fingerprinter interface{ SHA256() string }
	delimited     interface{ Delimiter() rune }
)

// fileSource is a CSV file read through a hashing reader.
type fileSource struct {
	*csvread.Reader
	file *os.File
	hash *normalize.HashingReader
}

func (s *fileSource) SHA256() string { return s.hash.Sum() }

func (s *fileSource) Close() error { return s.file.Close() }

// parquetSource adds a precomputed file hash to a Parquet reader.
type parquetSource struct {
	*parquetio.Reader
	sha string
}

func (s *parquetSource) SHA256() string { return s.sha }

// OpenFile opens a CSV or Parquet file as a Source, chosen by extension.
func OpenFile(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		sha, err := normalize.FileHash(path)
		if err != nil {
			return nil, err
		}
		r, err := parquetio.Open(path)
		if err != nil {
			return nil, err
		}
		return &parquetSource{Reader: r, sha: sha}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	hr := normalize.NewHashingReader(f)
	r, err := csvread.NewReader(hr)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return &fileSource{Reader: r, file: f, hash: hr}, nil
}

// SliceSource serves RawRows from memory. Useful for tests and for callers
// that already hold parsed rows.
type SliceSource struct {
	Rows []model.RawRow
	pos  int
}

func (s *SliceSource) Next() (model.RawRow, error) {
	if s.pos >= len(s.Rows) {
		return model.RawRow{}, io.EOF
	}
	row := s.Rows[s.pos]
	s.pos++
	return row, nil
}

func (s *SliceSource) Close() error { return nil }

func (s *SliceSource) Format() string { return "memory" }
