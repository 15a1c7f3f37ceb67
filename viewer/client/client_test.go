package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "dreamscape/pkg/errors"
)

func TestLoadGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/graph", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"nodes": [{"id":"Moon"},{"id":"Ocean"}],
			"links": [{"source":"Moon","target":"Ocean","value":2}]
		}`))
	}))
	defer server.Close()

	snapshot, err := New(server.URL, nil).LoadGraph(context.Background())
	require.NoError(t, err)

	assert.Len(t, snapshot.Nodes, 2)
	require.Len(t, snapshot.Links, 1)
	assert.Equal(t, 2.0, snapshot.Links[0].Weight)
}

func TestSubmit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/submit", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "I flew over a blue Ocean", body["dream"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"entry": {"id":"x","dream":"I flew over a blue Ocean","entities":["Ocean"]},
			"graph": {"nodes":[{"id":"Ocean"}],"links":[]}
		}`))
	}))
	defer server.Close()

	snapshot, err := New(server.URL, nil).Submit(context.Background(), "I flew over a blue Ocean")
	require.NoError(t, err)

	assert.Len(t, snapshot.Nodes, 1)
	assert.Empty(t, snapshot.Links)
}

func TestSubmitServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL, nil).Submit(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork))
}

func TestLoadGraphConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := New(server.URL, nil).LoadGraph(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork))
}
