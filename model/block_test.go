package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestTransactions() []TransactionData {
	return []TransactionData{
		{SenderID: "A", ReceiverID: "B", Timestamp: 1.0, Amount: FloatAmount(1.5)},
		{SenderID: "B", ReceiverID: "C", Timestamp: 2.0, Amount: IntAmount(3)},
	}
}

func createTestBlock() *Block {
	b, err := NewBlockAt(1, createTestTransactions(), "00ab", 1650000000.25, 0)
	if err != nil {
		panic(err)
	}
	return b
}

func TestNewBlockInvalidParameters(t *testing.T) {
	var verr *ValidationError

	b, err := NewBlockAt(-1, nil, "00ab", 1.0, 0)
	assert.Nil(t, b)
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "index", verr.Param)

	b, err = NewBlockAt(1, nil, "00ab", 1.0, -5)
	assert.Nil(t, b)
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "nonce", verr.Param)
}

func TestNewBlockDefaults(t *testing.T) {
	b, err := NewBlock(0, nil, "0000")
	assert.Nil(t, err)
	assert.Equal(t, int64(0), b.Index)
	assert.Equal(t, int64(0), b.Nonce)
	assert.Equal(t, "0000", b.PrevHash)
	// A nil transaction list is normalized to an empty one.
	assert.NotNil(t, b.Transactions)
	assert.Len(t, b.Transactions, 0)
	assert.Greater(t, b.Timestamp, 0.0)
}

func TestComputeHashDeterministic(t *testing.T) {
	b := createTestBlock()
	first := b.ComputeHash()
	assert.Equal(t, first, b.ComputeHash())
	assert.Regexp(t, regexp.MustCompile("^[0-9a-f]{64}$"), first)

	// An identically-valued block hashes identically.
	other := createTestBlock()
	assert.Equal(t, first, other.ComputeHash())
}

func TestComputeHashCoversEveryField(t *testing.T) {
	base := createTestBlock().ComputeHash()

	b := createTestBlock()
	b.Index = 2
	assert.NotEqual(t, base, b.ComputeHash())

	b = createTestBlock()
	b.Nonce = 1
	assert.NotEqual(t, base, b.ComputeHash())

	b = createTestBlock()
	b.PrevHash = "00ac"
	assert.NotEqual(t, base, b.ComputeHash())

	b = createTestBlock()
	b.Timestamp += 0.000001
	assert.NotEqual(t, base, b.ComputeHash())

	b = createTestBlock()
	b.Transactions[0].Amount = FloatAmount(1.6)
	assert.NotEqual(t, base, b.ComputeHash())

	// The amount's lexical class is part of the digest input.
	b = createTestBlock()
	b.Transactions[1].Amount = FloatAmount(3)
	assert.NotEqual(t, base, b.ComputeHash())
}

func TestComputeHashReflectsNonceMutation(t *testing.T) {
	b := createTestBlock()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		h := b.ComputeHash()
		assert.False(t, seen[h])
		seen[h] = true
		b.Nonce++
	}
}
