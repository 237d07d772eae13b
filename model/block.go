package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Block is a container of committed transactions plus the metadata linking it
// to the rest of the chain.
type Block struct {
	// Position of the block in the chain. The genesis block has index 0.
	Index int64 `json:"index"`
	// Transactions included in the block, in insertion order.
	Transactions []TransactionData `json:"transactions"`
	// Block creation time in seconds since the epoch.
	Timestamp float64 `json:"timestamp"`
	// Hash of the previous block in hex string format.
	PrevHash string `json:"previous_hash"`
	// Nonce is the miner's challenge. It is the only field mutated after
	// construction, during the proof-of-work search.
	Nonce int64 `json:"nonce"`
}

// NewBlock creates a validated block with the current time as its timestamp
// and a zero nonce.
func NewBlock(index int64, transactions []TransactionData, prevHash string) (*Block, error) {
	return NewBlockAt(index, transactions, prevHash, nowUnix(), 0)
}

// NewBlockAt creates a validated block with every field supplied explicitly.
func NewBlockAt(index int64, transactions []TransactionData, prevHash string, timestamp float64, nonce int64) (*Block, error) {
	if index < 0 {
		return nil, NewValidationError("index", "a non-negative int")
	}
	if nonce < 0 {
		return nil, NewValidationError("nonce", "a non-negative int")
	}
	if transactions == nil {
		transactions = []TransactionData{}
	}
	return &Block{
		Index:        index,
		Transactions: transactions,
		Timestamp:    timestamp,
		PrevHash:     prevHash,
		Nonce:        nonce,
	}, nil
}

// ComputeHash returns the hex SHA-256 digest of the block's canonical
// encoding. The digest covers all five fields, so mutating the nonce changes
// the result. Safe to call any number of times.
func (b *Block) ComputeHash() string {
	digest := sha256.Sum256(b.canonicalBytes())
	return hex.EncodeToString(digest[:])
}

// canonicalBytes encodes the block as a JSON-like object with keys in sorted
// order and pinned numeric formatting, so the digest is identical across
// platforms and runs.
func (b *Block) canonicalBytes() []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, `{"index":`...)
	buf = strconv.AppendInt(buf, b.Index, 10)
	buf = append(buf, `,"nonce":`...)
	buf = strconv.AppendInt(buf, b.Nonce, 10)
	buf = append(buf, `,"previous_hash":`...)
	buf = strconv.AppendQuote(buf, b.PrevHash)
	buf = append(buf, `,"timestamp":`...)
	buf = append(buf, canonicalFloat(b.Timestamp)...)
	buf = append(buf, `,"transactions":[`...)
	for i := range b.Transactions {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = b.Transactions[i].appendCanonical(buf)
	}
	buf = append(buf, "]}"...)
	return buf
}

// appendCanonical encodes the transaction projection with keys in sorted
// order, matching the block-level canonical encoding.
func (t TransactionData) appendCanonical(buf []byte) []byte {
	buf = append(buf, `{"amount":`...)
	buf = append(buf, t.Amount.canonical()...)
	buf = append(buf, `,"receiver_id":`...)
	buf = strconv.AppendQuote(buf, t.ReceiverID)
	buf = append(buf, `,"sender_id":`...)
	buf = strconv.AppendQuote(buf, t.SenderID)
	buf = append(buf, `,"timestamp":`...)
	buf = append(buf, canonicalFloat(t.Timestamp)...)
	buf = append(buf, '}')
	return buf
}

// canonicalFloat formats a float with a fixed 17 significant digits, enough to
// represent any float64 exactly. Shared by every float that feeds a digest.
func canonicalFloat(f float64) string {
	return strconv.FormatFloat(f, 'e', 16, 64)
}

// nowUnix returns the current time as fractional seconds since the epoch.
func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
