package model

import "math"

// Transaction is an immutable record of a value transfer between two parties.
type Transaction struct {
	// Identifier of the sending party.
	SenderID string
	// Identifier of the receiving party.
	ReceiverID string
	// Transaction time in seconds since the epoch.
	Timestamp float64
	// Transacted amount. May be negative or zero.
	Amount Amount
}

// TransactionData is the canonical projection of a transaction used for block
// hashing and snapshot storage. Field order is fixed: sender_id, receiver_id,
// timestamp, amount.
type TransactionData struct {
	SenderID   string  `json:"sender_id"`
	ReceiverID string  `json:"receiver_id"`
	Timestamp  float64 `json:"timestamp"`
	Amount     Amount  `json:"amount"`
}

// NewTransaction creates a validated transaction. The timestamp must be a
// finite float; there are no constraints on the amount.
func NewTransaction(senderID, receiverID string, timestamp float64, amount Amount) (*Transaction, error) {
	if math.IsNaN(timestamp) || math.IsInf(timestamp, 0) {
		return nil, NewValidationError("timestamp", "a finite float")
	}
	return &Transaction{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Timestamp:  timestamp,
		Amount:     amount,
	}, nil
}

// Data returns the canonical projection of the transaction.
func (t *Transaction) Data() TransactionData {
	return TransactionData{
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Timestamp:  t.Timestamp,
		Amount:     t.Amount,
	}
}
