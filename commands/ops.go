package commands

import (
	"errors"
	"strconv"
	"strings"
)

type Operation int

const (
	DEFAULT = iota
	// Force a mining attempt on the pending pool.
	MINE
	// Render the last N blocks of the chain.
	SHOW
	// List pending transactions.
	PENDING
	// Persist the ledger snapshot to the cache file.
	SAVE
	// Interrupt a running proof-of-work search and shut the node down.
	STOP
	// Interrupt a running proof-of-work search and start it over. Used when
	// the chain tail changed while a candidate block was being mined.
	RESTART
)

// A command contains an operation and its arguments.
type Command struct {
	Op   Operation
	Args []string
}

func (c Command) IsValid() bool {
	switch c.Op {
	case MINE, PENDING, SAVE, STOP, RESTART:
		return len(c.Args) == 0
	case SHOW:
		if len(c.Args) != 1 {
			return false
		}
		// depth must be a number.
		if _, err := strconv.Atoi(c.Args[0]); err != nil {
			return false
		}
		return true
	default:
		return false
	}
}

// CreateCommand parses a line of user input into a Command.
func CreateCommand(s string) (Command, error) {
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return Command{}, errors.New("command is empty")
	}
	cmd := Command{}
	switch ss[0] {
	case "mine":
		cmd.Op = MINE
	case "show":
		cmd.Op = SHOW
	case "pending":
		cmd.Op = PENDING
	case "save":
		cmd.Op = SAVE
	case "stop":
		cmd.Op = STOP
	case "restart":
		cmd.Op = RESTART
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return Command{}, errors.New("invalid command")
	}
	return cmd, nil
}

// Drain empties the channel without blocking. A stop or restart that lands
// after the mining task it targeted already finished must not abort the next
// one.
func Drain(ch chan Command) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// NewDefaultCommand creates a brand new command with default operation.
func NewDefaultCommand() Command {
	return Command{
		Op: DEFAULT,
	}
}

func (c Command) IsDefault() bool {
	return c.Op == DEFAULT
}
