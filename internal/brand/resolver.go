// Package brand resolves the white-label presentation for a request.
//
// A brand given in the query string wins over one remembered in the session;
// with custom branding disabled every request gets the built-in brand.
// Resolution never fails: any lookup problem falls back to the default.
package brand

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"kredita/internal/brand/models"
	"kredita/internal/coreapi"
	"kredita/internal/session"
	"kredita/pkg/platform/sentinel"
)

// QueryParam carries the brand uuid across pages.
const QueryParam = "brand"

//go:generate mockgen -source=resolver.go -destination=mocks/brand-mocks.go -package=mocks CoreAPI,Cache,SessionStore

// CoreAPI is the part of the core service client used for brand lookups.
type CoreAPI interface {
	BrandByUUID(ctx context.Context, uuid, accessToken string) *coreapi.BrandDTO
	BrandAPIKey(ctx context.Context, uuid, adminKey string) string
}

// Cache stores resolved brand sets. Get returns sentinel.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, uuid string) (*models.Set, error)
	Put(ctx context.Context, uuid string, set models.Set) error
}

// SessionStore is the part of the session store the resolver reads and writes.
type SessionStore interface {
	Read(r *http.Request) session.Data
	Commit(w http.ResponseWriter, r *http.Request, d session.Data) error
}

// Resolver picks the brand set for each request.
type Resolver struct {
	core          CoreAPI
	cache         Cache
	sessions      SessionStore
	enabled       bool
	defaultAPIKey string
	adminKey      string
	logger        *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache puts a cache in front of the core service.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// NewResolver builds a resolver. defaultAPIKey is used for the built-in brand
// and whenever a brand's own key cannot be fetched; adminKey authorises brand
// lookups against the core service.
func NewResolver(core CoreAPI, sessions SessionStore, enabled bool, defaultAPIKey, adminKey string, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		core:          core,
		sessions:      sessions,
		enabled:       enabled,
		defaultAPIKey: defaultAPIKey,
		adminKey:      adminKey,
		logger:        logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Enabled reports whether custom branding is switched on.
func (r *Resolver) Enabled() bool {
	return r.enabled
}

// DefaultSet is the built-in brand with the application's own API key.
func (r *Resolver) DefaultSet() models.Set {
	return models.Set{Brand: models.Default(), APIKey: r.defaultAPIKey}
}

// Resolve returns the brand set for req. fromQuery is true when the set came
// from the query string and should be persisted with Persist.
func (r *Resolver) Resolve(req *http.Request) (set models.Set, fromQuery bool) {
	if !r.enabled {
		return r.DefaultSet(), false
	}

	if uuid := req.URL.Query().Get(QueryParam); uuid != "" {
		return r.Lookup(req.Context(), uuid), true
	}

	if stored := r.sessions.Read(req).Brand; stored != nil {
		return *stored, false
	}
	return r.DefaultSet(), false
}

// Persist remembers set in the session so later pages keep the brand without
// the query parameter.
func (r *Resolver) Persist(w http.ResponseWriter, req *http.Request, set models.Set) error {
	d := r.sessions.Read(req)
	d.Brand = &set
	return r.sessions.Commit(w, req, d)
}

// Lookup fetches the brand set for uuid, consulting the cache first. Failed
// lookups fall back to the default brand and are not cached.
func (r *Resolver) Lookup(ctx context.Context, uuid string) models.Set {
	if !r.enabled || uuid == "" || uuid == models.DefaultUUID {
		return r.DefaultSet()
	}

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, uuid)
		switch {
		case err == nil:
			return *cached
		case !errors.Is(err, sentinel.ErrNotFound):
			r.logger.WarnContext(ctx, "brand cache read failed", "brand_uuid", uuid, "error", err)
		}
	}

	dto := r.core.BrandByUUID(ctx, uuid, r.adminKey)
	if dto == nil {
		r.logger.InfoContext(ctx, "brand not found, using default", "brand_uuid", uuid)
		return r.DefaultSet()
	}

	set := models.Set{Brand: models.FromDTO(dto), APIKey: r.core.BrandAPIKey(ctx, uuid, r.adminKey)}
	if set.APIKey == "" {
		set.APIKey = r.defaultAPIKey
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, uuid, set); err != nil {
			r.logger.WarnContext(ctx, "brand cache write failed", "brand_uuid", uuid, "error", err)
		}
	}
	return set
}
