package layout

import (
	"fmt"

	"github.com/abghorba/ledger_in_go/model"
	"github.com/jroimartin/gocui"
)

// Cursor tracks which block the explorer currently has selected. Shared by
// the chain and detail views.
type Cursor struct {
	Pos int
}

// ChainView is the ViewManager listing committed blocks down the left side.
type ChainView struct {
	Name   string
	Blocks []*model.Block
	Cursor *Cursor
}

func (cv *ChainView) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Left column.
	v, err := g.SetView(cv.Name, 0, 0, maxX/3, maxY*2/3)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Clear()
	v.Title = "chain"
	for i := range cv.Blocks {
		marker := "  "
		if i == cv.Cursor.Pos {
			marker = "> "
		}
		fmt.Fprintf(v, "%sblock %d  %s\n", marker, cv.Blocks[i].Index, shortenString(cv.Blocks[i].ComputeHash()))
	}
	return nil
}

// DetailView renders every field of the selected block.
type DetailView struct {
	Name   string
	Blocks []*model.Block
	Cursor *Cursor
}

func (dv *DetailView) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Right column.
	v, err := g.SetView(dv.Name, maxX/3+1, 0, maxX-1, maxY*2/3)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Clear()
	v.Wrap = true
	v.Title = "block"
	if len(dv.Blocks) == 0 {
		fmt.Fprintln(v, "chain is empty")
		return nil
	}
	b := dv.Blocks[dv.Cursor.Pos]
	fmt.Fprintf(v, "index:         %d\n", b.Index)
	fmt.Fprintf(v, "timestamp:     %f\n", b.Timestamp)
	fmt.Fprintf(v, "nonce:         %d\n", b.Nonce)
	fmt.Fprintf(v, "previous hash: %s\n", b.PrevHash)
	fmt.Fprintf(v, "hash:          %s\n", b.ComputeHash())
	fmt.Fprintf(v, "transactions:  %d\n", len(b.Transactions))
	for _, tx := range b.Transactions {
		fmt.Fprintf(v, "  %s -> %s  amount %s\n", tx.SenderID, tx.ReceiverID, tx.Amount.String())
	}
	return nil
}

// PendingView lists unconfirmed transactions across the bottom.
type PendingView struct {
	Name    string
	Pending []model.TransactionData
}

func (pv *PendingView) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Bottom strip.
	v, err := g.SetView(pv.Name, 0, maxY*2/3+1, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Clear()
	v.Wrap = true
	v.Title = fmt.Sprintf("pending (%d)", len(pv.Pending))
	for _, tx := range pv.Pending {
		fmt.Fprintf(v, "%s -> %s  amount %s  at %f\n", tx.SenderID, tx.ReceiverID, tx.Amount.String(), tx.Timestamp)
	}
	return nil
}

func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}
