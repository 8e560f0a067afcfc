package takeoff

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kuperiu/bimsyncManager/internal/cache"
	"github.com/kuperiu/bimsyncManager/internal/config"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIngestor(c cache.Cache, retryMax int) *Ingestor {
	cfg := config.GetDefaultConfig()
	cfg.Ingest.RetryMax = retryMax
	return NewIngestor(cfg, c, nil)
}

func writeProducts(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDecodeProducts(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{"array", `[{"ifcType":"IfcWall"},{"ifcType":"IfcSlab"}]`, []string{"IfcWall", "IfcSlab"}, false},
		{"array with nulls", `[null,{"ifcType":"IfcWall"},null]`, []string{"IfcWall"}, false},
		{"envelope", `{"products":[{"ifcType":"IfcDoor"},"junk",{"ifcType":"IfcWindow"}]}`, []string{"IfcDoor", "IfcWindow"}, false},
		{"single product", `{"ifcType":"IfcBeam"}`, []string{"IfcBeam"}, false},
		{"empty array", `[]`, []string{}, false},
		{"empty body", "  ", nil, true},
		{"scalar", `42`, nil, true},
		{"broken json", `[{"ifcType":`, nil, true},
		{"envelope with non array", `{"products":{"ifcType":"IfcWall"}}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := DecodeProducts(strings.NewReader(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			got := make([]string, 0, len(products))
			for _, p := range products {
				got = append(got, pathEntity.Resolve(p).String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	ingestor := testIngestor(nil, 0)

	products, err := ingestor.LoadFile(writeProducts(t, "walls.json", wallsJSON))
	require.NoError(t, err)
	assert.Len(t, products, 3)

	_, err = ingestor.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	_, err = ingestor.LoadFile(writeProducts(t, "bad.json", "not json"))
	assert.True(t, ierr.IsValidation(err))
}

func TestLoadURL(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(wallsJSON))
	}))
	defer server.Close()

	ingestor := testIngestor(nil, 0)
	products, err := ingestor.LoadURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, str("Wall-1"), pathName.Resolve(products[0]))

	_, err = ingestor.LoadURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadURLUsesCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(wallsJSON))
	}))
	defer server.Close()

	c := cache.NewInMemoryCache(config.GetDefaultConfig(), nil)
	ingestor := testIngestor(c, 0)

	first, err := ingestor.LoadURL(context.Background(), server.URL)
	require.NoError(t, err)
	second, err := ingestor.LoadURL(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first, second)

	c.DeleteByPrefix(context.Background(), cache.PrefixProducts)
	_, err = ingestor.LoadURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadURLRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(wallsJSON))
	}))
	defer server.Close()

	products, err := testIngestor(nil, 2).LoadURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadURLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte("<html></html>"))
		}
	}))
	defer server.Close()

	ingestor := testIngestor(nil, 0)

	_, err := ingestor.LoadURL(context.Background(), server.URL+"/missing")
	assert.True(t, ierr.IsHTTPClient(err))

	_, err = ingestor.LoadURL(context.Background(), server.URL+"/broken")
	assert.True(t, ierr.IsHTTPClient(err))

	_, err = ingestor.LoadURL(context.Background(), server.URL+"/html")
	assert.True(t, ierr.IsValidation(err))

	_, err = ingestor.LoadURL(context.Background(), "://not a url")
	assert.True(t, ierr.IsValidation(err))
}

func TestLoad(t *testing.T) {
	ingestor := testIngestor(nil, 0)
	path := writeProducts(t, "walls.json", wallsJSON)

	products, err := ingestor.Load(context.Background(), model.Source{Type: "FILE", URL: path})
	require.NoError(t, err)
	assert.Len(t, products, 3)

	_, err = ingestor.Load(context.Background(), model.Source{Type: "ftp", URL: path})
	assert.True(t, ierr.IsValidation(err))
}

func TestLoadAllKeepsSourceOrder(t *testing.T) {
	ingestor := testIngestor(nil, 0)
	first := writeProducts(t, "first.json", `[{"ifcType":"IfcWall"},{"ifcType":"IfcSlab"}]`)
	second := writeProducts(t, "second.json", `{"products":[{"ifcType":"IfcDoor"}]}`)
	third := writeProducts(t, "third.json", `{"ifcType":"IfcBeam"}`)

	products, err := ingestor.LoadAll(context.Background(), []model.Source{
		{Type: "file", URL: first},
		{Type: "file", URL: second},
		{Type: "file", URL: third},
	})
	require.NoError(t, err)

	got := make([]string, len(products))
	for i, p := range products {
		got[i] = pathEntity.Resolve(p).String()
	}
	assert.Equal(t, []string{"IfcWall", "IfcSlab", "IfcDoor", "IfcBeam"}, got)

	_, err = ingestor.LoadAll(context.Background(), []model.Source{
		{Type: "file", URL: first},
		{Type: "file", URL: filepath.Join(t.TempDir(), "missing.json")},
	})
	assert.True(t, ierr.IsNotFound(err))
}
