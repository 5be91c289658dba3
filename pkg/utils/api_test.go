package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDecodesData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "{ ping }", req.Query)
		assert.Equal(t, float64(3), req.Variables["first"])

		w.Write([]byte(`{"data":{"ping":"pong"}}`))
	}))
	defer server.Close()

	api := NewAPI(server.URL, nil)
	var out struct {
		Ping string `json:"ping"`
	}
	err := api.Query(context.Background(), "{ ping }", map[string]any{"first": 3}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out.Ping)
}

func TestQueryReturnsGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"boom"},{"message":"bang"}]}`))
	}))
	defer server.Close()

	err := NewAPI(server.URL, nil).Query(context.Background(), "{ ping }", nil, nil)
	require.Error(t, err)

	var gqlErrs GraphQLErrors
	require.True(t, errors.As(err, &gqlErrs))
	assert.Len(t, gqlErrs, 2)
	assert.Equal(t, "graphql: boom; bang", err.Error())
}

func TestQueryBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewAPI(server.URL, nil).Query(context.Background(), "{ ping }", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
