package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/abghorba/ledger_in_go/commands"
	"github.com/abghorba/ledger_in_go/config"
	"github.com/abghorba/ledger_in_go/model"
	"github.com/abghorba/ledger_in_go/node"
	"github.com/abghorba/ledger_in_go/visualize"
	"gopkg.in/yaml.v2"
)

var (
	port       *string
	configPath *string
)

func init() {
	port = flag.String("port", "", "port for the HTTP API, overrides the config")
	configPath = flag.String("config_path", "node/cmd/config.yaml", "path to node config")
}

// ParseCommand reads stdin lines and turns them into node commands.
func ParseCommand(cmd chan commands.Command) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, _ := reader.ReadString('\n')
		text = strings.TrimRight(text, "\r\n")
		if text == "" {
			continue
		}
		c, err := commands.CreateCommand(text)
		if err != nil {
			log.Println(err)
			continue
		}
		cmd <- c
	}
}

// HandleCommand reacts to node commands:
// mine / stop / restart control the proof-of-work search,
// show renders the chain, pending and save inspect and persist state.
func HandleCommand(cmd chan commands.Command, n *node.Node) {
	// A separate control channel interrupts a running search without
	// blocking command handling.
	ctl := make(chan commands.Command, 1)
	var isMining atomic.Bool
	for {
		c := <-cmd
		switch c.Op {
		case commands.MINE:
			if !isMining.CompareAndSwap(false, true) {
				log.Print("a mining task is already running\n> ")
				continue
			}
			// Discard any control command left over from the previous task.
			commands.Drain(ctl)
			go func() {
				defer isMining.Store(false)
				for {
					mined, ic, err := n.MineWithControl(ctl)
					if errors.Is(err, model.ErrMiningInterrupted) {
						if ic.Op == commands.STOP {
							log.Print("mining stopped\n> ")
							return
						}
						// RESTART: mine again on the current tail.
						continue
					}
					if err != nil {
						log.Print(err, "\n> ")
					} else if mined {
						log.Print("block committed\n> ")
					} else {
						log.Printf("not enough pending transactions (need %d)\n> ", model.MinTransactionsPerBlock)
					}
					return
				}
			}()
		case commands.RESTART, commands.STOP:
			if !isMining.Load() {
				log.Print("no running mining task\n> ")
				continue
			}
			go func() {
				// Relay the signal in a separate goroutine so HandleCommand
				// never blocks.
				ctl <- c
			}()
		case commands.PENDING:
			pending := n.PendingData()
			log.Printf("%d pending transaction(s)", len(pending))
			for _, tx := range pending {
				log.Printf("  %s -> %s  amount %s", tx.SenderID, tx.ReceiverID, tx.Amount.String())
			}
			fmt.Print("> ")
		case commands.SAVE:
			if err := n.Save(); err != nil {
				log.Print(err, "\n> ")
				continue
			}
			log.Print("ledger saved\n> ")
		case commands.SHOW:
			d, err := strconv.Atoi(c.Args[0])
			if err != nil {
				log.Printf("%s is not a valid number for depth", c.Args[0])
				continue
			}
			if err := visualize.Render(n.ChainData(), d, n.UUID()); err != nil {
				log.Print(err, "\n> ")
			}
		default:
			log.Print("unrecognized command\n> ")
		}
	}
}

func ParseAppConfig(path string) config.AppConfig {
	c := config.AppConfig{}
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("failed to read config: ", err)
	}
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		log.Fatal("failed to parse config: ", err)
	}
	return c
}

func main() {
	flag.Parse()

	cfg := ParseAppConfig(*configPath)
	if *port != "" {
		cfg.PORT = *port
	}

	n, err := node.NewNode(cfg, node.NewFileStore(cfg.CACHE_PATH))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("node %s, difficulty %d, cache %s", n.UUID(), n.Difficulty(), cfg.CACHE_PATH)

	cmd := make(chan commands.Command)
	go ParseCommand(cmd)
	go HandleCommand(cmd, n)

	server := node.NewServer(n)
	log.Fatal(server.Start(cfg.PORT))
}
