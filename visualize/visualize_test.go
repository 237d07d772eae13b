package visualize

import (
	"testing"

	"github.com/abghorba/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestChain(t *testing.T, blocks int) []*model.Block {
	l, err := model.NewLedger(1)
	require.Nil(t, err)
	for i := 1; i < blocks; i++ {
		for j := 0; j < model.MinTransactionsPerBlock; j++ {
			_, err := l.AddTransaction("A", "B", float64(j+1), model.IntAmount(1))
			require.Nil(t, err)
		}
		mined, err := l.Mine()
		require.Nil(t, err)
		require.True(t, mined)
	}
	return l.Chain
}

func TestConstructDataDepth(t *testing.T) {
	blocks := createTestChain(t, 4)

	head := constructData(blocks, 2)
	require.NotNil(t, head)
	assert.Equal(t, int64(2), head.index)
	require.NotNil(t, head.next)
	assert.Equal(t, int64(3), head.next.index)
	assert.Nil(t, head.next.next)
}

func TestConstructDataWholeChain(t *testing.T) {
	blocks := createTestChain(t, 2)

	head := constructData(blocks, 0)
	require.NotNil(t, head)
	assert.Equal(t, int64(0), head.index)
	assert.Len(t, head.next.txs, model.MinTransactionsPerBlock)

	assert.Nil(t, constructData(nil, 3))
}

func TestShortenString(t *testing.T) {
	assert.Equal(t, "00ab", shortenString("00ab"))
	assert.Equal(t, "abc...ghi", shortenString("abcdefghi"))
}
