package progress

import (
	"context"

	"github.com/pot-code/skillspark/internal/infrastructure/driver"
)

// RecordStore persistence layer of progress records
type RecordStore interface {
	// Get returns driver.ErrKeyNotFound when no value is stored under key
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// ViewerStore RecordStore over a KeyValueDB, keys are namespaced by viewer
type ViewerStore struct {
	kv       driver.KeyValueDB
	viewerID string
}

var _ RecordStore = &ViewerStore{}

// NewViewerStore create a store whose records are private to viewerID
func NewViewerStore(kv driver.KeyValueDB, viewerID string) *ViewerStore {
	return &ViewerStore{kv, viewerID}
}

func (vs *ViewerStore) scoped(key string) string {
	return "viewer:" + vs.viewerID + ":" + key
}

// Get implement RecordStore
func (vs *ViewerStore) Get(ctx context.Context, key string) (string, error) {
	return vs.kv.Get(ctx, vs.scoped(key))
}

// Set implement RecordStore, records never expire
func (vs *ViewerStore) Set(ctx context.Context, key string, value string) error {
	return vs.kv.SetEX(ctx, vs.scoped(key), value, 0)
}
