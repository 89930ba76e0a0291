package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeES) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.bodies = append(f.bodies, string(body))
		f.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{"id":7,"username":"alice","status":"PAID","total":92000,"products":["tv"]}}]}}`)
		case strings.Contains(r.URL.Path, "/_doc/"):
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"result":"created"}`)
		default:
			t.Logf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{}`)
		}
	}
}

func newIndex(t *testing.T) (*OrderIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return &OrderIndex{ES: es, Index: "orders"}, fake
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:      7,
		Total:   92000,
		Status:  models.OrderPaid,
		User:    models.User{Username: "alice"},
		Address: models.Address{City: "Bandung"},
		Items: []models.OrderItem{
			{Product: models.Product{Name: "tv"}, Quantity: 1, Price: 92000},
		},
	}
}

func TestNewOrderDocument(t *testing.T) {
	doc := NewOrderDocument(sampleOrder())
	assert.Equal(t, uint(7), doc.ID)
	assert.Equal(t, "alice", doc.Username)
	assert.Equal(t, "PAID", doc.Status)
	assert.Equal(t, []string{"tv"}, doc.Products)
	assert.Equal(t, "Bandung", doc.City)
}

func TestQuery(t *testing.T) {
	b, err := json.Marshal(Query("alice tv", 20, 10))
	require.NoError(t, err)

	var q struct {
		From  int `json:"from"`
		Size  int `json:"size"`
		Query struct {
			MultiMatch struct {
				Query  string   `json:"query"`
				Fields []string `json:"fields"`
			} `json:"multi_match"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(b, &q))
	assert.Equal(t, 20, q.From)
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, "alice tv", q.Query.MultiMatch.Query)
	assert.Contains(t, q.Query.MultiMatch.Fields, "products")
}

func TestIndexOrder(t *testing.T) {
	idx, fake := newIndex(t)

	require.NoError(t, idx.IndexOrder(context.Background(), sampleOrder()))

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "PUT /orders/_doc/7", fake.requests[0])
	var doc OrderDocument
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[0]), &doc))
	assert.Equal(t, "alice", doc.Username)
}

func TestSearch(t *testing.T) {
	idx, fake := newIndex(t)

	total, docs, err := idx.Search(context.Background(), "tv", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, docs, 1)
	assert.Equal(t, uint(7), docs[0].ID)
	assert.Equal(t, int64(92000), docs[0].Total)

	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0], "/orders/_search")
}
