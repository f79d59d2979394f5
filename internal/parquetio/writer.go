package parquetio

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/statehealth/internal/model"
)

// Write encodes records as a Parquet file on w, including derived region and rank.
// The output can be read back by Open, which ignores the derived columns.
func Write(w io.Writer, records []model.HealthRecord) error {
	writer := parquet.NewGenericWriter[model.HealthRecord](w)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// WriteFile writes records to a new Parquet file at path.
func WriteFile(path string, records []model.HealthRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
