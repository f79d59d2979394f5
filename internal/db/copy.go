package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/statehealth/internal/model"
)

// ObservationColumns is the COPY column order for health.observations.
var ObservationColumns = []string{"state", "year", "indicator", "value"}

// ChannelSource implements pgx.CopyFromSource by reading records from a channel.
// This provides natural backpressure between the producer and the COPY writer.
type ChannelSource struct {
	ch      <-chan *model.HealthRecord
	current *model.HealthRecord
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.HealthRecord) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	rec, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = rec
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	r := s.current
	return []any{r.State, int32(r.Year), string(r.Indicator), r.Value}, nil
}

// Err is always nil; producer errors are reported on their own channel.
func (s *ChannelSource) Err() error {
	return nil
}

// Compile-time check that ChannelSource satisfies the interface.
var _ pgx.CopyFromSource = (*ChannelSource)(nil)
