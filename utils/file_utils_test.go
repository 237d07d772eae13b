package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abghorba/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateLedgerColdStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")

	l, err := LoadOrCreateLedger(path)
	require.Nil(t, err)
	assert.Equal(t, model.DefaultDifficulty, l.Difficulty)
	assert.Len(t, l.Pending, 0)
	require.Len(t, l.Chain, 1)
	assert.Equal(t, int64(0), l.Chain[0].Index)
}

func TestLoadOrCreateLedgerEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	require.Nil(t, os.WriteFile(path, []byte{}, 0644))

	l, err := LoadOrCreateLedger(path)
	require.Nil(t, err)
	assert.Equal(t, model.DefaultDifficulty, l.Difficulty)
	assert.Len(t, l.Chain, 1)
}

func TestLoadOrCreateLedgerMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	require.Nil(t, os.WriteFile(path, []byte("{{{"), 0644))

	l, err := LoadOrCreateLedger(path)
	assert.Nil(t, l)
	assert.NotNil(t, err)
}

func TestSaveAndLoadLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	l := createTestLedger(t)

	require.Nil(t, SaveLedger(l, path))
	loaded, err := LoadOrCreateLedger(path)
	require.Nil(t, err)
	assert.Equal(t, l.Difficulty, loaded.Difficulty)
	assert.Equal(t, l.Pending, loaded.Pending)
	assert.Equal(t, l.Chain, loaded.Chain)
}
