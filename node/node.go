package node

import (
	"sync"

	"github.com/abghorba/ledger_in_go/commands"
	"github.com/abghorba/ledger_in_go/config"
	"github.com/abghorba/ledger_in_go/model"
	"github.com/abghorba/ledger_in_go/utils"
	"github.com/jinzhu/copier"
	uuid "github.com/satori/go.uuid"
)

// A Node owns a ledger and serializes every operation on it. The ledger's
// state is not internally synchronized, so all intake, mining and persistence
// goes through the node's single mutex.
type Node struct {
	// The ledger this node maintains.
	ledger *model.Ledger
	// Persists the ledger after every mutation.
	store Store
	// Node config.
	config config.AppConfig
	// A single mutex for changing internal state.
	m sync.RWMutex
	// A unique identifier of this node. Only used for log and render output
	// names, never for consensus.
	uuid string
}

// NewNode loads the cached ledger from the store, or starts a fresh chain
// with the configured difficulty when no cache exists.
func NewNode(cfg config.AppConfig, store Store) (*Node, error) {
	ledger, err := store.Load()
	if err != nil {
		return nil, err
	}
	// A genesis-only chain with an empty pool is a fresh start, so the config
	// difficulty applies. Anything else keeps its snapshot difficulty.
	if cfg.DIFFICULTY > 0 && len(ledger.Chain) == 1 && len(ledger.Pending) == 0 {
		ledger.Difficulty = cfg.DIFFICULTY
	}
	myuuid := uuid.NewV4()
	return &Node{
		ledger: ledger,
		store:  store,
		config: cfg,
		m:      sync.RWMutex{},
		uuid:   myuuid.String(),
	}, nil
}

// UUID returns the node's unique identifier.
func (n *Node) UUID() string {
	return n.uuid
}

// Difficulty returns the ledger's current proof-of-work difficulty.
func (n *Node) Difficulty() int {
	n.m.RLock()
	defer n.m.RUnlock()
	return n.ledger.Difficulty
}

// SubmitTransaction validates the request payload, queues the transaction,
// attempts to mine a block and persists the ledger. Returns the accepted
// projection and whether a block was committed.
func (n *Node) SubmitTransaction(payload map[string]interface{}) (model.TransactionData, bool, error) {
	td, err := utils.ParseTransactionPayload(payload)
	if err != nil {
		return model.TransactionData{}, false, err
	}

	n.m.Lock()
	defer n.m.Unlock()

	if _, err := n.ledger.AddTransaction(td.SenderID, td.ReceiverID, td.Timestamp, td.Amount); err != nil {
		return model.TransactionData{}, false, err
	}
	mined, err := n.ledger.Mine()
	if err != nil {
		return td, false, err
	}
	if err := n.store.Save(n.ledger); err != nil {
		return td, mined, err
	}
	return td, mined, nil
}

// Mine forces a mining attempt on the pending pool and persists the result.
func (n *Node) Mine() (bool, error) {
	n.m.Lock()
	defer n.m.Unlock()

	mined, err := n.ledger.Mine()
	if err != nil {
		return false, err
	}
	if mined {
		if err := n.store.Save(n.ledger); err != nil {
			return true, err
		}
	}
	return mined, nil
}

// MineWithControl is Mine with an interruptible proof-of-work search. The
// interrupting command is returned so the caller can decide between restart
// and shutdown. Mining is a really long process, but the node mutex stays
// held throughout: the ledger is single-writer.
func (n *Node) MineWithControl(ctl chan commands.Command) (bool, commands.Command, error) {
	n.m.Lock()
	defer n.m.Unlock()

	mined, c, err := n.ledger.MineWithControl(ctl)
	if err != nil {
		return false, c, err
	}
	if mined {
		if err := n.store.Save(n.ledger); err != nil {
			return true, c, err
		}
	}
	return mined, c, nil
}

// ChainData returns a deep copy of the committed chain.
func (n *Node) ChainData() []*model.Block {
	n.m.RLock()
	defer n.m.RUnlock()

	blocks := []*model.Block{}
	copier.CopyWithOption(&blocks, &n.ledger.Chain, copier.Option{DeepCopy: true})
	return blocks
}

// PendingData returns a deep copy of the pending pool.
func (n *Node) PendingData() []model.TransactionData {
	n.m.RLock()
	defer n.m.RUnlock()

	pending := []model.TransactionData{}
	copier.CopyWithOption(&pending, &n.ledger.Pending, copier.Option{DeepCopy: true})
	return pending
}

// Snapshot returns the serialized ledger state.
func (n *Node) Snapshot() ([]byte, error) {
	n.m.RLock()
	defer n.m.RUnlock()
	return utils.SerializeLedger(n.ledger)
}

// Save persists the current ledger state.
func (n *Node) Save() error {
	n.m.RLock()
	defer n.m.RUnlock()
	return n.store.Save(n.ledger)
}
