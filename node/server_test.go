package node

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abghorba/ledger_in_go/config"
	"github.com/abghorba/ledger_in_go/model"
	"github.com/abghorba/ledger_in_go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestServer(t *testing.T) (*Server, string) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	n, err := NewNode(config.AppConfig{DIFFICULTY: 1, CACHE_PATH: path}, NewFileStore(path))
	require.Nil(t, err)
	return NewServer(n), path
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestHandleChainColdStart(t *testing.T) {
	s, _ := createTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/chain", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp chainResponse
	require.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Length)
	require.Len(t, resp.Chain, 1)
	assert.Equal(t, model.GenesisPrevHash, resp.Chain[0].PrevHash)
}

func TestSubmitTransactionsOverHTTP(t *testing.T) {
	s, path := createTestServer(t)

	bodies := []string{
		`{"sender_id": "A", "receiver_id": "B", "timestamp": 1.0, "amount": 1.0}`,
		`{"sender_id": "A", "receiver_id": "B", "timestamp": 2.0, "amount": 2.0}`,
		`{"sender_id": "A", "receiver_id": "B", "timestamp": 3.0, "amount": 3.0}`,
	}
	for i, body := range bodies {
		w := doRequest(t, s, http.MethodPost, "/transactions", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp transactionResponse
		require.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "accepted", resp.Status)
		// The third accepted transaction crosses the mining threshold.
		assert.Equal(t, i == len(bodies)-1, resp.Mined)
	}

	w := doRequest(t, s, http.MethodGet, "/chain", "")
	var chain chainResponse
	require.Nil(t, json.NewDecoder(w.Body).Decode(&chain))
	assert.Equal(t, 2, chain.Length)
	require.Len(t, chain.Chain, 2)
	assert.Len(t, chain.Chain[1].Transactions, 3)

	w = doRequest(t, s, http.MethodGet, "/pending", "")
	var pending pendingResponse
	require.Nil(t, json.NewDecoder(w.Body).Decode(&pending))
	assert.Equal(t, 0, pending.Length)

	// Every mutation was persisted to the cache file.
	cached, err := utils.LoadOrCreateLedger(path)
	require.Nil(t, err)
	assert.Len(t, cached.Chain, 2)
}

func TestSubmitInvalidTransactionOverHTTP(t *testing.T) {
	s, _ := createTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/transactions", `{"sender_id": 42, "receiver_id": "B", "timestamp": 1.0, "amount": 1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp transactionResponse
	require.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "invalid", resp.Status)
	assert.Contains(t, resp.Error, "sender_id")
}

func TestSubmitMalformedBodyOverHTTP(t *testing.T) {
	s, _ := createTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/transactions", "{{{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMineEndpointBelowThreshold(t *testing.T) {
	s, _ := createTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/mine", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp mineResponse
	require.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Mined)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := createTestServer(t)

	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, s, http.MethodPost, "/chain", "{}").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, s, http.MethodGet, "/transactions", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, s, http.MethodGet, "/mine", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, s, http.MethodPost, "/pending", "{}").Code)
}
