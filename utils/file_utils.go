package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abghorba/ledger_in_go/model"
)

// LoadOrCreateLedger returns the ledger cached at path, or a brand-new ledger
// with default difficulty when no cache exists. A missing or empty file means
// "no cache"; a present but unparseable file is reported as an error rather
// than silently replaced, so a corrupted chain is never thrown away.
func LoadOrCreateLedger(path string) (*model.Ledger, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewDefaultLedger(), nil
		}
		return nil, err
	}
	if info.Size() == 0 {
		return model.NewDefaultLedger(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := DeserializeLedger(data)
	if err != nil {
		return nil, fmt.Errorf("cached ledger at %s is malformed: %w", path, err)
	}
	return l, nil
}

// SaveLedger writes the serialized ledger to path, replacing any previous
// snapshot.
func SaveLedger(l *model.Ledger, path string) error {
	data, err := SerializeLedger(l)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
