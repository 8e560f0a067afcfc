package takeoff

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kuperiu/bimsyncManager/internal/cache"
	"github.com/kuperiu/bimsyncManager/internal/config"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
)

// Ingestor loads product lists from files or bimsync exports served over HTTP.
type Ingestor struct {
	client  *retryablehttp.Client
	cache   cache.Cache
	timeout time.Duration
	log     *logger.Logger
}

// NewIngestor builds an ingestor from the ingest settings. c may be nil,
// in which case remote sources are fetched on every call.
func NewIngestor(cfg *config.Configuration, c cache.Cache, log *logger.Logger) *Ingestor {
	if log == nil {
		log = logger.NewNopLogger()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Ingest.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = retryLogger{log: log}

	return &Ingestor{
		client:  client,
		cache:   c,
		timeout: cfg.Ingest.Timeout,
		log:     log,
	}
}

// Load reads the products of one source.
func (i *Ingestor) Load(ctx context.Context, src model.Source) ([]*model.Product, error) {
	switch strings.ToLower(src.Type) {
	case "file":
		return i.LoadFile(src.URL)
	case "url":
		return i.LoadURL(ctx, src.URL)
	default:
		return nil, ierr.NewErrorf("unknown source type: %s", src.Type).
			WithHint("Source type must be one of: file, url").
			Mark(ierr.ErrValidation)
	}
}

// LoadAll loads every source concurrently and concatenates the products in
// source order. The first failure fails the whole load.
func (i *Ingestor) LoadAll(ctx context.Context, sources []model.Source) ([]*model.Product, error) {
	if len(sources) == 1 {
		return i.Load(ctx, sources[0])
	}
	batches, err := iter.MapErr(sources, func(src *model.Source) ([]*model.Product, error) {
		return i.Load(ctx, *src)
	})
	if err != nil {
		return nil, err
	}
	return lo.Flatten(batches), nil
}

// LoadFile reads a product file from disk.
func (i *Ingestor) LoadFile(path string) ([]*model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ierr.WithError(err).
				WithHintf("Product file %s does not exist", path).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHintf("Could not open product file %s", path).
			Mark(ierr.ErrSystem)
	}
	defer f.Close()

	products, err := DecodeProducts(f)
	if err != nil {
		return nil, err
	}
	i.log.Infow("products loaded", "source", path, "count", len(products))
	return products, nil
}

// LoadURL fetches a product export over HTTP, retrying transient failures.
// Successful fetches are cached by URL.
func (i *Ingestor) LoadURL(ctx context.Context, url string) ([]*model.Product, error) {
	key := cache.GenerateKey(cache.PrefixProducts, url)
	if i.cache != nil {
		if cached, ok := i.cache.Get(ctx, key); ok {
			if products, ok := cached.([]*model.Product); ok {
				i.log.Debugw("products served from cache", "source", url, "count", len(products))
				return products, nil
			}
		}
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid source URL %s", url).
			Mark(ierr.ErrValidation)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not fetch products from %s", url).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, ierr.NewErrorf("GET %s returned %d", url, resp.StatusCode).
			WithHintf("Product source responded with status %d", resp.StatusCode).
			Mark(ierr.ErrHTTPClient)
	}

	products, err := DecodeProducts(resp.Body)
	if err != nil {
		return nil, err
	}
	if i.cache != nil {
		i.cache.Set(ctx, key, products, 0)
	}
	i.log.Infow("products loaded", "source", url, "count", len(products))
	return products, nil
}

// DecodeProducts reads a JSON product list. Accepted shapes are an array of
// products, an object with a "products" array, or a single product object.
// Null entries are dropped.
func DecodeProducts(r io.Reader) ([]*model.Product, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read product data").
			Mark(ierr.ErrSystem)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ierr.NewError("empty product data").
			WithHint("Product data is empty").
			Mark(ierr.ErrValidation)
	}

	switch body[0] {
	case '[':
		var products []*model.Product
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, invalidProducts(err)
		}
		return CompactProducts(products), nil
	case '{':
		var envelope model.Record
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, invalidProducts(err)
		}
		raw, ok := envelope.Get("products")
		if !ok {
			return []*model.Product{&envelope}, nil
		}
		items, ok := raw.([]interface{})
		if !ok {
			return nil, ierr.NewError("products is not an array").
				WithHint(`"products" must be an array of product objects`).
				Mark(ierr.ErrValidation)
		}
		return lo.FilterMap(items, func(item interface{}, _ int) (*model.Product, bool) {
			p, ok := item.(*model.Record)
			return p, ok
		}), nil
	default:
		return nil, ierr.NewError("product data is not a JSON object or array").
			WithHint("Product data must be a JSON array or object").
			Mark(ierr.ErrValidation)
	}
}

func invalidProducts(err error) error {
	return ierr.WithError(err).
		WithHint("Product data is not valid JSON").
		Mark(ierr.ErrValidation)
}

// retryLogger adapts the zap logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	log *logger.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnw(msg, keysAndValues...)
}
