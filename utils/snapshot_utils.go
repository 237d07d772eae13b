package utils

import (
	"encoding/json"

	"github.com/abghorba/ledger_in_go/model"
)

// ledgerRecord is the persisted form of a ledger. Field order matches the
// snapshot layout: difficulty, unconfirmed_transactions, length, chain.
type ledgerRecord struct {
	Difficulty              int                     `json:"difficulty"`
	UnconfirmedTransactions []model.TransactionData `json:"unconfirmed_transactions"`
	Length                  int                     `json:"length"`
	Chain                   []*model.Block          `json:"chain"`
}

// SerializeLedger encodes the full ledger state as the canonical snapshot
// blob. The output is stable across round-trips.
func SerializeLedger(l *model.Ledger) ([]byte, error) {
	rec := ledgerRecord{
		Difficulty:              l.Difficulty,
		UnconfirmedTransactions: l.Pending,
		Length:                  len(l.Chain),
		Chain:                   l.Chain,
	}
	if rec.UnconfirmedTransactions == nil {
		rec.UnconfirmedTransactions = []model.TransactionData{}
	}
	if rec.Chain == nil {
		rec.Chain = []*model.Block{}
	}
	return json.Marshal(rec)
}

// DeserializeLedger reconstructs a ledger from a snapshot blob. The blob's
// chain is adopted verbatim, in order, with no re-validation of hash linkage
// or proof-of-work: a hand-edited snapshot is accepted as-is. Only a blob
// that fails to parse is an error. A blob whose chain is empty keeps the
// fresh genesis block, so the chain is never empty after a load.
func DeserializeLedger(data []byte) (*model.Ledger, error) {
	var rec ledgerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	l := model.NewDefaultLedger()
	l.Difficulty = rec.Difficulty
	l.Pending = rec.UnconfirmedTransactions
	if l.Pending == nil {
		l.Pending = []model.TransactionData{}
	}
	if len(rec.Chain) > 0 {
		// The fresh ledger minted its own genesis block. The snapshot carries
		// the whole chain, genesis included, so drop the auto-created one.
		l.Chain = l.Chain[:0]
		for _, b := range rec.Chain {
			if b.Transactions == nil {
				b.Transactions = []model.TransactionData{}
			}
			l.Chain = append(l.Chain, b)
		}
	}
	return l, nil
}
