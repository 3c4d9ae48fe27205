package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kredita/internal/brand"
	"kredita/internal/brand/models"
)

const (
	fallbackFavicon    = "/favicon.svg"
	defaultContentType = "image/png"
	maxLogoSize        = 2 << 20
)

// Looker resolves a brand by uuid.
type Looker interface {
	Lookup(ctx context.Context, uuid string) models.Set
}

// Handler serves brand assets.
type Handler struct {
	brands     Looker
	httpClient *http.Client
	logger     *slog.Logger
}

func New(brands Looker, logger *slog.Logger) *Handler {
	return &Handler{
		brands:     brands,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

// Register mounts the brand routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/favicon", h.HandleFavicon)
}

// HandleFavicon proxies the brand logo so it can be used as the page icon.
// Relative logos are served by the static file handler; anything that cannot
// be fetched falls back to the default favicon.
func (h *Handler) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	set := h.brands.Lookup(ctx, r.URL.Query().Get(brand.QueryParam))
	logo := set.Brand.Logo

	if !strings.HasPrefix(logo, "https://") {
		if strings.HasPrefix(logo, "/") && !strings.HasPrefix(logo, "//") {
			http.Redirect(w, r, logo, http.StatusFound)
			return
		}
		http.Redirect(w, r, fallbackFavicon, http.StatusFound)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logo, nil)
	if err != nil {
		h.fallback(w, r, set.Brand.Name, err)
		return
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.fallback(w, r, set.Brand.Name, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.fallback(w, r, set.Brand.Name, fmt.Errorf("logo responded with status %d", resp.StatusCode))
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoSize))
	if err != nil {
		h.fallback(w, r, set.Brand.Name, err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) fallback(w http.ResponseWriter, r *http.Request, brandName string, err error) {
	h.logger.WarnContext(r.Context(), "failed to fetch favicon",
		"brand", brandName,
		"error", err,
	)
	http.Redirect(w, r, fallbackFavicon, http.StatusFound)
}
