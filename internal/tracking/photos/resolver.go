package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour        = 60 * 60
	uriCacheExpire = oneHour * 1 // resolved URIs are short-lived by nature
)

// ErrResolveInFlight is returned when another resolve for the same photo is
// already running; the caller should simply retry shortly.
var ErrResolveInFlight = errors.New("resolve already in flight")

type uriFetcher interface {
	FetchURI(ctx context.Context, photo Photo) (string, error)
}

// Resolver turns a photo record into a display URI. Results are cached per
// photo ID, and concurrent resolves of the same photo are collapsed: one
// caller does the work, the rest get ErrResolveInFlight.
type Resolver struct {
	fetcher uriFetcher
	cache   *freecache.Cache
	metrics *metrics.Manager

	mu       sync.Mutex
	inFlight map[int]struct{}
}

func NewResolver(fetcher uriFetcher, metrics *metrics.Manager) *Resolver {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Resolver{
		fetcher:  fetcher,
		cache:    freecache.NewCache(cacheSize),
		metrics:  metrics,
		inFlight: map[int]struct{}{},
	}
}

func (r *Resolver) Resolve(ctx context.Context, photo Photo) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "photos.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte(fmt.Sprintf("photo-uri::%d", photo.ID))
	if uriBytes, err := r.cache.Get(cacheKey); err == nil {
		log.Tracef("found uri for photo %d in cache", photo.ID)
		r.metrics.CounterPhotoCacheHits.Inc()
		return string(uriBytes), nil
	}
	r.metrics.CounterPhotoCacheMisses.Inc()

	r.mu.Lock()
	if _, busy := r.inFlight[photo.ID]; busy {
		r.mu.Unlock()
		return "", ErrResolveInFlight
	}
	r.inFlight[photo.ID] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inFlight, photo.ID)
		r.mu.Unlock()
	}()

	uri, err := r.fetcher.FetchURI(ctx, photo)
	if err != nil {
		return "", fmt.Errorf("fetch uri for photo %d: %w", photo.ID, err)
	}

	if err := r.cache.Set(cacheKey, []byte(uri), uriCacheExpire); err != nil {
		log.Errorf("failed to write uri cache for photo %d: %s", photo.ID, err)
	}

	return uri, nil
}

// BaseURLFetcher builds display URIs by joining a public base URL with the
// photo object key.
type BaseURLFetcher struct {
	baseURL string
}

func NewBaseURLFetcher(baseURL string) *BaseURLFetcher {
	return &BaseURLFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (f *BaseURLFetcher) FetchURI(_ context.Context, photo Photo) (string, error) {
	if photo.ObjectKey == "" {
		return "", fmt.Errorf("photo %d has no object key", photo.ID)
	}
	return f.baseURL + "/" + strings.TrimPrefix(photo.ObjectKey, "/"), nil
}
