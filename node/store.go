package node

import (
	"github.com/abghorba/ledger_in_go/model"
	"github.com/abghorba/ledger_in_go/utils"
)

// Store persists ledger snapshots between runs.
type Store interface {
	// Load returns the cached ledger, or a fresh default ledger when no
	// snapshot exists yet.
	Load() (*model.Ledger, error)
	// Save replaces the cached snapshot with the given ledger's state.
	Save(l *model.Ledger) error
}

// FileStore keeps the snapshot in a single cache file on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (*model.Ledger, error) {
	return utils.LoadOrCreateLedger(s.Path)
}

func (s *FileStore) Save(l *model.Ledger) error {
	return utils.SaveLedger(l, s.Path)
}
