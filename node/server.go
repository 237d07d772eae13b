package node

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abghorba/ledger_in_go/model"
)

// Server exposes a node over a JSON HTTP API. The core ledger does not depend
// on any transport; this layer only parses payloads, calls the node and maps
// outcomes to status codes.
type Server struct {
	node *Node
	mux  *http.ServeMux
}

// NewServer creates an HTTP server around the given node.
func NewServer(n *Node) *Server {
	s := &Server{
		node: n,
		mux:  http.NewServeMux(),
	}
	s.mux.HandleFunc("/chain", s.handleChain)
	s.mux.HandleFunc("/pending", s.handlePending)
	s.mux.HandleFunc("/transactions", s.handleTransactions)
	s.mux.HandleFunc("/mine", s.handleMine)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start begins serving HTTP requests and blocks forever.
func (s *Server) Start(port string) error {
	log.Printf("node %s serving HTTP on port %s", s.node.UUID(), port)
	return http.ListenAndServe(":"+port, s.mux)
}

type chainResponse struct {
	Length int            `json:"length"`
	Chain  []*model.Block `json:"chain"`
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	chain := s.node.ChainData()
	writeJSON(w, http.StatusOK, chainResponse{Length: len(chain), Chain: chain})
}

type pendingResponse struct {
	Length                  int                     `json:"length"`
	UnconfirmedTransactions []model.TransactionData `json:"unconfirmed_transactions"`
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pending := s.node.PendingData()
	writeJSON(w, http.StatusOK, pendingResponse{Length: len(pending), UnconfirmedTransactions: pending})
}

type transactionResponse struct {
	Status      string                 `json:"status"`
	Mined       bool                   `json:"mined"`
	Transaction *model.TransactionData `json:"transaction,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// UseNumber keeps integer amounts distinguishable from floats.
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, transactionResponse{Status: "invalid", Error: "request body is not a JSON object"})
		return
	}

	td, mined, err := s.node.SubmitTransaction(payload)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, transactionResponse{Status: "invalid", Error: verr.Error()})
			return
		}
		log.Printf("transaction submit failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, transactionResponse{Status: "error", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, transactionResponse{Status: "accepted", Mined: mined, Transaction: &td})
}

type mineResponse struct {
	Mined bool   `json:"mined"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	mined, err := s.node.Mine()
	if err != nil {
		if errors.Is(err, model.ErrCommitRejected) {
			writeJSON(w, http.StatusConflict, mineResponse{Mined: false, Error: err.Error()})
			return
		}
		log.Printf("mine failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, mineResponse{Mined: mined, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, mineResponse{Mined: mined})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
