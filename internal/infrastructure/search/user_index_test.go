package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

// newTestIndex points an ES client at an httptest server that answers like a cluster.
func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*UserIndex, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewUserIndex(es, "users"), &calls
}

func TestUserIndex_IndexUser(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	u := &entity.User{ID: "u1", FirstName: "Ada", Email: "ada@example.com", Password: "$2a$secret", CreatedAt: time.Now()}
	require.NoError(t, idx.IndexUser(context.Background(), u))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/users/_doc/u1", call.path)
	assert.Contains(t, call.body, `"email":"ada@example.com"`)
	assert.NotContains(t, call.body, "secret")
}

func TestUserIndex_DeleteUser_MissingIsFine(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	require.NoError(t, idx.DeleteUser(context.Background(), "u1"))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
}

func TestUserIndex_SearchUsers(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"hits": []map[string]any{
					{"_id": "u1", "_source": map[string]any{"id": "u1", "email": "ada@example.com", "firstName": "Ada"}},
				},
			},
		})
	})

	docs, err := idx.SearchUsers(context.Background(), "ada", 500)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "ada@example.com", docs[0].Email)

	call := (*calls)[0]
	assert.True(t, strings.HasSuffix(call.path, "/users/_search"))
	assert.Contains(t, call.body, `"size":10`)
	assert.Contains(t, call.body, `"query":"ada"`)
}

func TestUserIndex_SearchUsers_ClusterError(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := idx.SearchUsers(context.Background(), "ada", 5)
	assert.Error(t, err)
}

func TestUserIndex_EnsureIndex_CreatesWhenMissing(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPut, (*calls)[1].method)
	assert.Equal(t, "/users", (*calls)[1].path)
	assert.Contains(t, (*calls)[1].body, `"mappings"`)
}

func TestUserIndex_EnsureIndex_Exists(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Len(t, *calls, 1)
}
