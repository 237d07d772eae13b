package utils

import (
	"encoding/json"
	"strings"

	"github.com/abghorba/ledger_in_go/model"
)

// ParseTransactionPayload validates the shape of a transaction request body
// and converts it to the canonical projection. The payload must hold exactly
// four fields: sender_id (string), receiver_id (string), timestamp (float)
// and amount (int or float). The map is expected to come from a json.Decoder
// with UseNumber set, so integer amounts keep their lexical class.
func ParseTransactionPayload(data map[string]interface{}) (model.TransactionData, error) {
	var td model.TransactionData

	if len(data) != 4 {
		return td, model.NewValidationError("payload", "exactly the fields sender_id, receiver_id, timestamp and amount")
	}

	senderID, ok := data["sender_id"].(string)
	if !ok {
		return td, model.NewValidationError("sender_id", "a str")
	}
	receiverID, ok := data["receiver_id"].(string)
	if !ok {
		return td, model.NewValidationError("receiver_id", "a str")
	}

	tsNum, ok := data["timestamp"].(json.Number)
	if !ok || !isFloatLiteral(tsNum.String()) {
		return td, model.NewValidationError("timestamp", "a float")
	}
	timestamp, err := tsNum.Float64()
	if err != nil {
		return td, model.NewValidationError("timestamp", "a float")
	}

	amountNum, ok := data["amount"].(json.Number)
	if !ok {
		return td, model.NewValidationError("amount", "an int or float")
	}
	amount, err := model.ParseAmount(amountNum.String())
	if err != nil {
		return td, err
	}

	return model.TransactionData{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Timestamp:  timestamp,
		Amount:     amount,
	}, nil
}

// isFloatLiteral reports whether a JSON number literal has a fraction or
// exponent part. Bare integers are not accepted where a float is required.
func isFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE")
}
