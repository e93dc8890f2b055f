package store

import (
	"context"
	"time"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

var _ model.HistoryStore = (*NopStore)(nil)

// NopStore is used when history is disabled. Nothing is archived and Recent
// is always empty.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Record(context.Context, model.GenerationRecord) error { return nil }
func (s *NopStore) Recent(context.Context, int) ([]model.GenerationRecord, error) {
	return nil, nil
}
func (s *NopStore) Cleanup(context.Context, time.Duration) (int64, error) { return 0, nil }
