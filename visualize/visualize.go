package visualize

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/abghorba/ledger_in_go/model"
	"github.com/bradleyjkemp/memviz"
)

// We re-define a trimmed render model here because the ledger blocks carry
// full canonical projections that would clutter the graph.
type transaction struct {
	sender   string
	receiver string
	amount   string
}

type block struct {
	index    int64
	hash     string
	prevHash string
	nonce    int64
	txs      []transaction
	next     *block
}

// The hash strings are just too long to render, instead we take only the first
// 3 and last 3 characters and replace the middle part with '...'. E.g.
// "abcdefghi" will be rendered as "abc...ghi".
func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}

func txToTx(td model.TransactionData) transaction {
	return transaction{
		sender:   td.SenderID,
		receiver: td.ReceiverID,
		amount:   td.Amount.String(),
	}
}

func blockToBlock(b *model.Block) *block {
	n := &block{
		index:    b.Index,
		hash:     shortenString(b.ComputeHash()),
		prevHash: shortenString(b.PrevHash),
		nonce:    b.Nonce,
	}
	for i := 0; i < len(b.Transactions); i++ {
		n.txs = append(n.txs, txToTx(b.Transactions[i]))
	}
	return n
}

// constructData links the last d blocks of the chain for rendering. d <= 0
// renders the whole chain.
func constructData(blocks []*model.Block, d int) *block {
	if len(blocks) == 0 {
		return nil
	}
	start := 0
	if d > 0 && len(blocks) > d {
		start = len(blocks) - d
	}

	head := blockToBlock(blocks[start])
	cur := head
	for i := start + 1; i < len(blocks); i++ {
		cur.next = blockToBlock(blocks[i])
		cur = cur.next
	}
	return head
}

// Render draws the last d blocks of the chain into a png under /tmp, using
// the node id to keep output files apart. Requires graphviz's dot on PATH.
func Render(blocks []*model.Block, d int, id string) error {
	chain := constructData(blocks, d)
	if chain == nil {
		return fmt.Errorf("nothing to render, chain is empty")
	}

	buf := &bytes.Buffer{}
	memviz.Map(buf, chain)

	fileName := "/tmp/chaindata-" + id
	outputName := "/tmp/rendered-chain-" + id + ".png"
	if err := os.WriteFile(fileName, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := exec.Command("dot", "-Tpng", fileName, "-o", outputName).Run(); err != nil {
		return err
	}
	log.Println("rendered chain to", outputName)
	return nil
}
