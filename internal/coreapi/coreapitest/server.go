// Package coreapitest runs an in-memory core service for tests that drive the
// whole application over HTTP.
package coreapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"kredita/internal/coreapi"
)

// Server answers the core service endpoints from fixtures. Unknown uuids and
// phones get the service's soft rejection envelope.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	shared   map[string]coreapi.SharedCredentials
	oneClick map[string]coreapi.SharedCredentials
	matches  map[string]string
	links    map[string]string
	brands   map[string]coreapi.BrandDTO
	apiKeys  map[string]string
	requests []string
}

// NewServer starts a server that is closed with the test.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		shared:   map[string]coreapi.SharedCredentials{},
		oneClick: map[string]coreapi.SharedCredentials{},
		matches:  map[string]string{},
		links:    map[string]string{},
		brands:   map[string]coreapi.BrandDTO{},
		apiKeys:  map[string]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /hasMatchingCredentials", s.handleHasMatching)
	mux.HandleFunc("GET /sharedCredentials/{uuid}", s.handleShared)
	mux.HandleFunc("POST /1-click", s.handleOneClick)
	mux.HandleFunc("GET /1-click/{uuid}", s.handleOneClickCredentials)
	mux.HandleFunc("GET /brands/{uuid}", s.handleBrand)
	mux.HandleFunc("GET /brands/{uuid}/api-key", s.handleBrandAPIKey)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// AddSharedCredentials serves shared under uuid.
func (s *Server) AddSharedCredentials(uuid string, shared coreapi.SharedCredentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shared.UUID = uuid
	s.shared[uuid] = shared
}

// AddOneClickCredentials serves shared under a 1-click uuid.
func (s *Server) AddOneClickCredentials(uuid string, shared coreapi.SharedCredentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shared.UUID = uuid
	s.oneClick[uuid] = shared
}

// AddMatch makes a credential check for contact (email or normalized phone)
// match with the given wallet continuation URL.
func (s *Server) AddMatch(contact, walletURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[contact] = walletURL
}

// AddOneClickLink makes a 1-click request for phone return link.
func (s *Server) AddOneClickLink(phone, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[phone] = link
}

// AddBrand serves brand and its API key.
func (s *Server) AddBrand(brand coreapi.BrandDTO, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands[brand.UUID] = brand
	s.apiKeys[brand.UUID] = apiKey
}

// Requests lists "METHOD path" for every request received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHasMatching(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		softReject(w, http.StatusBadRequest, "malformed request")
		return
	}
	s.mu.Lock()
	url, ok := s.matches[strings.ToLower(in.Email)]
	if !ok {
		url, ok = s.matches[in.Phone]
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"match": ok, "url": url})
}

func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	s.serveCredentials(w, s.shared, r.PathValue("uuid"))
}

func (s *Server) handleOneClickCredentials(w http.ResponseWriter, r *http.Request) {
	s.serveCredentials(w, s.oneClick, r.PathValue("uuid"))
}

func (s *Server) serveCredentials(w http.ResponseWriter, from map[string]coreapi.SharedCredentials, uuid string) {
	s.mu.Lock()
	shared, ok := from[uuid]
	s.mu.Unlock()
	if !ok {
		softReject(w, http.StatusNotFound, "shared credentials not found")
		return
	}
	writeJSON(w, http.StatusOK, shared)
}

func (s *Server) handleOneClick(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		softReject(w, http.StatusBadRequest, "malformed request")
		return
	}
	s.mu.Lock()
	link, ok := s.links[in.Phone]
	s.mu.Unlock()
	if !ok {
		softReject(w, http.StatusBadRequest, "phone is not supported")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (s *Server) handleBrand(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	brand, ok := s.brands[r.PathValue("uuid")]
	s.mu.Unlock()
	if !ok {
		softReject(w, http.StatusNotFound, "brand not found")
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (s *Server) handleBrandAPIKey(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	key, ok := s.apiKeys[r.PathValue("uuid")]
	s.mu.Unlock()
	if !ok {
		softReject(w, http.StatusNotFound, "brand not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"apiKey": key})
}

func softReject(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"code": status, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// TextValue encodes s as a credential value.
func TextValue(s string) json.RawMessage {
	raw, _ := json.Marshal(s)
	return raw
}
