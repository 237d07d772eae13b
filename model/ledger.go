package model

import (
	"strings"

	"github.com/abghorba/ledger_in_go/commands"
)

const (
	// DefaultDifficulty is the proof-of-work difficulty for a fresh ledger.
	DefaultDifficulty = 1
	// MinTransactionsPerBlock is the pending pool size required before Mine
	// will build a block. A policy constant, independent of difficulty.
	MinTransactionsPerBlock = 3
	// GenesisPrevHash is the fabricated previous-hash sentinel of block 0.
	GenesisPrevHash = "0000"
)

// Ledger is an append-only, hash-linked chain of blocks plus the pool of
// transactions waiting to be committed. It owns all mutation of the chain:
// transaction intake, the proof-of-work search and the block commit gate.
//
// A Ledger is not internally synchronized. A process sharing one across
// goroutines must serialize AddTransaction, Mine and snapshot load/save
// through a single-writer discipline (see the node package).
type Ledger struct {
	// How many leading zero hex characters a valid block hash needs.
	Difficulty int
	// Transactions accepted but not yet included in any committed block.
	Pending []TransactionData
	// Committed blocks. Chain[0] is always the genesis block.
	Chain []*Block
}

// NewLedger creates a ledger with the given difficulty and a single genesis
// block. Difficulty must be a positive integer.
func NewLedger(difficulty int) (*Ledger, error) {
	if difficulty <= 0 {
		return nil, NewValidationError("difficulty", "an int greater than 0")
	}
	genesis, err := NewBlock(0, nil, GenesisPrevHash)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		Difficulty: difficulty,
		Pending:    []TransactionData{},
		Chain:      []*Block{genesis},
	}, nil
}

// NewDefaultLedger creates a ledger with the default difficulty.
func NewDefaultLedger() *Ledger {
	l, err := NewLedger(DefaultDifficulty)
	if err != nil {
		panic(err)
	}
	return l
}

// LastBlock returns the tail of the chain. The genesis block guarantees the
// chain is never empty.
func (l *Ledger) LastBlock() *Block {
	return l.Chain[len(l.Chain)-1]
}

// targetPrefix tolerates a non-positive difficulty, which a hand-edited
// snapshot can carry: the empty prefix makes every hash a valid proof.
func (l *Ledger) targetPrefix() string {
	if l.Difficulty < 1 {
		return ""
	}
	return strings.Repeat("0", l.Difficulty)
}

// ProofOfWork increments the block's nonce from its current value until the
// block hash has Difficulty leading zero characters, then returns the winning
// hash. The search is monotonic and deterministic given the starting nonce,
// and blocks the caller until a valid hash is found.
func (l *Ledger) ProofOfWork(b *Block) string {
	proof, _, _ := l.ProofOfWorkWithControl(b, nil)
	return proof
}

// ProofOfWorkWithControl runs the same nonce search but polls ctl once per
// iteration. Receiving a command aborts the search and returns it alongside
// ErrMiningInterrupted, leaving the block at the nonce it reached. A nil ctl
// makes the search uninterruptible.
func (l *Ledger) ProofOfWorkWithControl(b *Block, ctl chan commands.Command) (string, commands.Command, error) {
	prefix := l.targetPrefix()
	hash := b.ComputeHash()
	for !strings.HasPrefix(hash, prefix) {
		if ctl != nil {
			select {
			case c := <-ctl:
				return "", c, ErrMiningInterrupted
			default:
			}
		}
		b.Nonce++
		hash = b.ComputeHash()
	}
	return hash, commands.NewDefaultCommand(), nil
}

// IsValidProof reports whether proof meets the difficulty target and matches
// the block's hash recomputed fresh. Proofs are never trusted without the
// recomputation, so a hash found for a different nonce or field state fails.
func (l *Ledger) IsValidProof(b *Block, proof string) bool {
	return strings.HasPrefix(proof, l.targetPrefix()) && proof == b.ComputeHash()
}

// AddBlock appends the block to the chain if and only if its previous hash
// matches the current last block's hash and the proof is valid. Returns false
// and leaves the chain unchanged otherwise. This is the sole linkage gate: it
// rejects forks and stale proofs without raising an error.
func (l *Ledger) AddBlock(b *Block, proof string) bool {
	if l.LastBlock().ComputeHash() != b.PrevHash {
		return false
	}
	if !l.IsValidProof(b, proof) {
		return false
	}
	l.Chain = append(l.Chain, b)
	return true
}

// AddTransaction validates a new transaction and appends its projection to
// the pending pool. The pool has no upper bound.
func (l *Ledger) AddTransaction(senderID, receiverID string, timestamp float64, amount Amount) (*Transaction, error) {
	tx, err := NewTransaction(senderID, receiverID, timestamp, amount)
	if err != nil {
		return nil, err
	}
	l.Pending = append(l.Pending, tx.Data())
	return tx, nil
}

// Mine batches the entire pending pool into a new block, searches for a valid
// proof and commits the block to the chain. Returns false with a nil error if
// the pool holds fewer than MinTransactionsPerBlock transactions. The pool is
// cleared only after the commit is confirmed; a rejected commit keeps the
// transactions queued and returns ErrCommitRejected.
func (l *Ledger) Mine() (bool, error) {
	mined, _, err := l.MineWithControl(nil)
	return mined, err
}

// MineWithControl is Mine with the proof-of-work search wired to a control
// channel. An interrupting command is returned to the caller, which decides
// whether to restart; the pending pool is left untouched in that case.
func (l *Ledger) MineWithControl(ctl chan commands.Command) (bool, commands.Command, error) {
	if len(l.Pending) < MinTransactionsPerBlock {
		return false, commands.NewDefaultCommand(), nil
	}

	last := l.LastBlock()
	txs := make([]TransactionData, len(l.Pending))
	copy(txs, l.Pending)

	candidate, err := NewBlock(last.Index+1, txs, last.ComputeHash())
	if err != nil {
		return false, commands.NewDefaultCommand(), err
	}

	proof, c, err := l.ProofOfWorkWithControl(candidate, ctl)
	if err != nil {
		return false, c, err
	}

	if !l.AddBlock(candidate, proof) {
		return false, commands.NewDefaultCommand(), ErrCommitRejected
	}
	l.Pending = []TransactionData{}
	return true, commands.NewDefaultCommand(), nil
}
