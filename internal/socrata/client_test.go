package socrata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceQueryBuildsParams(t *testing.T) {
	var gotQuery map[string][]string
	var gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotToken = r.Header.Get("X-App-Token")
		w.Write([]byte(`[{"numero_radicado":"2023001","estado":"APROBADO"}]`))
	}))
	defer srv.Close()

	client := NewClient(Config{Domain: srv.URL, AppToken: "tok-123"})
	rows, err := client.Resource("48fq-mxnm").Query(context.Background(), QueryOptions{
		Select: "numero_radicado, estado",
		Where:  "estado = 'APROBADO'",
		Order:  "fecha_radicacion DESC",
		Limit:  50,
		Offset: 100,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "2023001", rows[0]["numero_radicado"])
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, []string{"50"}, gotQuery["$limit"])
	assert.Equal(t, []string{"100"}, gotQuery["$offset"])
	assert.Equal(t, []string{"numero_radicado, estado"}, gotQuery["$select"])
	assert.Equal(t, []string{"estado = 'APROBADO'"}, gotQuery["$where"])
	assert.Equal(t, []string{"fecha_radicacion DESC"}, gotQuery["$order"])
}

func TestResourceQueryDefaultLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("$limit"); got != "1000" {
			t.Errorf("$limit = %q, want 1000", got)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(Config{Domain: srv.URL})
	_, err := client.Resource("abcd-efgh").Query(context.Background(), QueryOptions{})
	require.NoError(t, err)
}

func TestResourceQueryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true,"message":"malformed query"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{Domain: srv.URL})
	_, err := client.Resource("abcd-efgh").Query(context.Background(), QueryOptions{Where: "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestQueryUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"estado":"APROBADO"}]`))
	}))
	defer srv.Close()

	cache := NewCache(NewMemoryStorage(), time.Minute)
	client := NewClient(Config{Domain: srv.URL, Cache: cache})
	res := client.Resource("abcd-efgh")

	for i := 0; i < 3; i++ {
		rows, err := res.Query(context.Background(), QueryOptions{Limit: 10})
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}

	assert.Equal(t, int32(1), calls.Load(), "identical queries should hit upstream once")
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(NewMemoryStorage(), 10*time.Millisecond)
	cache.Set("http://example/a", []byte("body"))

	body, ok := cache.Get("http://example/a")
	require.True(t, ok)
	assert.Equal(t, []byte("body"), body)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.Get("http://example/a")
	assert.False(t, ok, "entry should expire after TTL")
}

func TestMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/views/48fq-mxnm.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"48fq-mxnm","name":"Tramites INVIMA"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{Domain: srv.URL})
	meta, err := client.Metadata(context.Background(), "48fq-mxnm")
	require.NoError(t, err)
	assert.Equal(t, "Tramites INVIMA", meta["name"])
}
