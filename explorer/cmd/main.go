package main

import (
	"flag"
	"log"

	"github.com/abghorba/ledger_in_go/layout"
	"github.com/abghorba/ledger_in_go/utils"
	"github.com/jroimartin/gocui"
)

var cachePath = flag.String("cache_path", "cache/ledger.txt", "path to the ledger snapshot to browse")

// A read-only terminal browser over a cached ledger snapshot. Arrow keys move
// between blocks, q or ctrl-c quits.
func main() {
	flag.Parse()

	ledger, err := utils.LoadOrCreateLedger(*cachePath)
	if err != nil {
		log.Fatal(err)
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	cursor := &layout.Cursor{}
	chainView := &layout.ChainView{Name: "chain", Blocks: ledger.Chain, Cursor: cursor}
	detailView := &layout.DetailView{Name: "detail", Blocks: ledger.Chain, Cursor: cursor}
	pendingView := &layout.PendingView{Name: "pending", Pending: ledger.Pending}
	g.SetManager(chainView, detailView, pendingView)

	quit := func(g *gocui.Gui, v *gocui.View) error {
		return gocui.ErrQuit
	}
	up := func(g *gocui.Gui, v *gocui.View) error {
		if cursor.Pos > 0 {
			cursor.Pos--
		}
		return nil
	}
	down := func(g *gocui.Gui, v *gocui.View) error {
		if cursor.Pos < len(ledger.Chain)-1 {
			cursor.Pos++
		}
		return nil
	}

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Fatal(err)
	}
	if err := g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		log.Fatal(err)
	}
	if err := g.SetKeybinding("", gocui.KeyArrowUp, gocui.ModNone, up); err != nil {
		log.Fatal(err)
	}
	if err := g.SetKeybinding("", gocui.KeyArrowDown, gocui.ModNone, down); err != nil {
		log.Fatal(err)
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Fatal(err)
	}
}
