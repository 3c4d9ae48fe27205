package brand

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kredita/internal/brand/mocks"
	"kredita/internal/brand/models"
	"kredita/internal/coreapi"
	"kredita/internal/session"
	"kredita/pkg/platform/sentinel"
)

type ResolverSuite struct {
	suite.Suite
	core     *mocks.MockCoreAPI
	cache    *mocks.MockCache
	sessions *mocks.MockSessionStore
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.core = mocks.NewMockCoreAPI(ctrl)
	s.cache = mocks.NewMockCache(ctrl)
	s.sessions = mocks.NewMockSessionStore(ctrl)
	s.resolver = NewResolver(s.core, s.sessions, true, "default-key", "admin-key", slog.New(slog.DiscardHandler), WithCache(s.cache))
}

var acmeDTO = &coreapi.BrandDTO{
	UUID:         "b-1",
	ReceiverName: "Acme",
	LogoImageURL: "https://cdn.example.com/acme.png",
	HomepageURL:  "https://acme.example.com",
	PrimaryColor: "#336699",
}

func (s *ResolverSuite) TestDisabledAlwaysDefault() {
	r := NewResolver(s.core, s.sessions, false, "default-key", "admin-key", slog.New(slog.DiscardHandler))

	set, fromQuery := r.Resolve(httptest.NewRequest(http.MethodGet, "/register?brand=b-1", nil))

	s.False(fromQuery)
	s.True(set.Brand.IsDefault())
	s.Equal("default-key", set.APIKey)
}

func (s *ResolverSuite) TestQueryBrandFetchedAndCached() {
	s.cache.EXPECT().Get(gomock.Any(), "b-1").Return(nil, sentinel.ErrNotFound)
	s.core.EXPECT().BrandByUUID(gomock.Any(), "b-1", "admin-key").Return(acmeDTO)
	s.core.EXPECT().BrandAPIKey(gomock.Any(), "b-1", "admin-key").Return("acme-key")
	s.cache.EXPECT().Put(gomock.Any(), "b-1", gomock.Any()).DoAndReturn(
		func(_ any, _ string, set models.Set) error {
			s.Equal("Acme", set.Brand.Name)
			return nil
		})

	set, fromQuery := s.resolver.Resolve(httptest.NewRequest(http.MethodGet, "/register?brand=b-1", nil))

	s.True(fromQuery)
	s.Equal("Acme", set.Brand.Name)
	s.Equal("#336699", set.Brand.Theme.Main)
	s.Equal("acme-key", set.APIKey)
}

func (s *ResolverSuite) TestQueryBrandServedFromCache() {
	cached := models.Set{Brand: models.FromDTO(acmeDTO), APIKey: "acme-key"}
	s.cache.EXPECT().Get(gomock.Any(), "b-1").Return(&cached, nil)

	set, _ := s.resolver.Resolve(httptest.NewRequest(http.MethodGet, "/register?brand=b-1", nil))
	s.Equal(cached, set)
}

func (s *ResolverSuite) TestCacheErrorFallsThroughToCoreService() {
	s.cache.EXPECT().Get(gomock.Any(), "b-1").Return(nil, errors.New("connection refused"))
	s.core.EXPECT().BrandByUUID(gomock.Any(), "b-1", "admin-key").Return(acmeDTO)
	s.core.EXPECT().BrandAPIKey(gomock.Any(), "b-1", "admin-key").Return("")
	s.cache.EXPECT().Put(gomock.Any(), "b-1", gomock.Any()).Return(errors.New("connection refused"))

	set, _ := s.resolver.Resolve(httptest.NewRequest(http.MethodGet, "/register?brand=b-1", nil))
	s.Equal("Acme", set.Brand.Name)
	s.Equal("default-key", set.APIKey, "missing brand key falls back to the application key")
}

func (s *ResolverSuite) TestUnknownBrandFallsBackAndIsNotCached() {
	s.cache.EXPECT().Get(gomock.Any(), "nope").Return(nil, sentinel.ErrNotFound)
	s.core.EXPECT().BrandByUUID(gomock.Any(), "nope", "admin-key").Return(nil)

	set, fromQuery := s.resolver.Resolve(httptest.NewRequest(http.MethodGet, "/register?brand=nope", nil))
	s.True(fromQuery)
	s.True(set.Brand.IsDefault())
}

func (s *ResolverSuite) TestSessionBrandUsedWithoutQuery() {
	stored := models.Set{Brand: models.FromDTO(acmeDTO), APIKey: "acme-key"}
	s.sessions.EXPECT().Read(gomock.Any()).Return(session.Data{Brand: &stored})

	set, fromQuery := s.resolver.Resolve(httptest.NewRequest(http.MethodGet, "/verified", nil))
	s.False(fromQuery)
	s.Equal(stored, set)
}

func (s *ResolverSuite) TestNoBrandAnywhereIsDefault() {
	s.sessions.EXPECT().Read(gomock.Any()).Return(session.Data{})

	set, _ := s.resolver.Resolve(httptest.NewRequest(http.MethodGet, "/register", nil))
	s.True(set.Brand.IsDefault())
	s.Equal("default-key", set.APIKey)
}

func (s *ResolverSuite) TestPersistKeepsIdentity() {
	set := models.Set{Brand: models.FromDTO(acmeDTO), APIKey: "acme-key"}
	s.sessions.EXPECT().Read(gomock.Any()).Return(session.Data{ID: "sid", Identity: "Jane Doe"})
	s.sessions.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ http.ResponseWriter, _ *http.Request, d session.Data) error {
			s.Equal("sid", d.ID)
			s.Equal("Jane Doe", d.Identity)
			s.Require().NotNil(d.Brand)
			s.Equal("Acme", d.Brand.Brand.Name)
			return nil
		})

	rec := httptest.NewRecorder()
	s.NoError(s.resolver.Persist(rec, httptest.NewRequest(http.MethodGet, "/register?brand=b-1", nil), set))
}

func TestLookupDefaultUUIDSkipsCoreService(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewResolver(mocks.NewMockCoreAPI(ctrl), mocks.NewMockSessionStore(ctrl), true, "k", "a", slog.New(slog.DiscardHandler))

	set := r.Lookup(t.Context(), models.DefaultUUID)
	require.True(t, set.Brand.IsDefault())
	assert.Equal(t, "k", set.APIKey)
}
