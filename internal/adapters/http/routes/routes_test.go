package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"roomfinder/internal/adapters/persistence/memstore"
	"roomfinder/internal/config"
	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/jwt"
	"roomfinder/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "routes-test-secret"

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

type testAPI struct {
	t     *testing.T
	app   *fiber.App
	store *memstore.Store
	cfg   *config.Config
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		AppMode:   "dev",
		Database:  config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:       config.JWTConfig{Secret: testSecret},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
	store := memstore.New()

	return &testAPI{
		t:     t,
		app:   NewApp(store, cfg, zap.NewNop(), nil),
		store: store,
		cfg:   cfg,
	}
}

func (a *testAPI) raw(method, path string, body []byte, token string) *http.Response {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

func (a *testAPI) do(method, path string, body interface{}, token string) (int, envelope) {
	a.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(a.t, err)
	}

	resp := a.raw(method, path, payload, token)
	defer resp.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID                 string `json:"id"`
		Username           string `json:"username"`
		Role               string `json:"role"`
		OnboardingComplete bool   `json:"onboardingComplete"`
	} `json:"user"`
}

func (a *testAPI) signup(username, role string) session {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": username,
		"password": "password123",
		"role":     role,
		"name":     username,
	}, "")
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	return decode[session](a.t, env)
}

func (a *testAPI) login(username, pass string) (int, envelope) {
	return a.do(http.MethodPost, "/api/auth/login", fiber.Map{"username": username, "password": pass}, "")
}

func (a *testAPI) seeker(username string, budget float64) session {
	a.t.Helper()
	s := a.signup(username, "user")
	status, env := a.do(http.MethodPost, "/api/users/complete-profile", fiber.Map{
		"gender":        "Female",
		"budget":        budget,
		"leaseDuration": 12,
		"contactInfo":   fiber.Map{"email": username + "@example.com", "preferredContact": "email"},
	}, s.Token)
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	return s
}

func (a *testAPI) lister(username string) session {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/listers/listers", fiber.Map{
		"username":    username,
		"password":    "password123",
		"name":        username,
		"contactInfo": fiber.Map{"email": username + "@example.com", "preferredContact": "email"},
	}, "")
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	status, env = a.login(username, "password123")
	require.Equal(a.t, http.StatusOK, status)
	return decode[session](a.t, env)
}

type listing struct {
	ID                string  `json:"id"`
	ListerUsername    string  `json:"listerUsername"`
	DistanceFromUniv  float64 `json:"distanceFromUniv"`
	Rent              float64 `json:"rent"`
	Description       string  `json:"description"`
	NumberOfRooms     int     `json:"numberOfRooms"`
	NumberOfBathrooms float64 `json:"numberOfBathrooms"`
	SquareFoot        float64 `json:"squareFoot"`
	Address           string  `json:"address"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
}

func listingBody(rent float64) fiber.Map {
	return fiber.Map{
		"distanceFromUniv":  0.8,
		"rent":              rent,
		"description":       "Sunny two bedroom",
		"numberOfRooms":     2,
		"numberOfBathrooms": 1.5,
		"squareFoot":        900,
		"address":           "45 Mission Hill Ave, Boston, MA",
		"latitude":          42.3330,
		"longitude":         -71.1036,
	}
}

func (a *testAPI) createListing(owner session, rent float64) listing {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/listers/listers/"+owner.User.Username+"/listings", listingBody(rent), owner.Token)
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	return decode[listing](a.t, env)
}

func TestAuth_SignupLoginMe(t *testing.T) {
	api := newTestAPI(t)

	s := api.signup("sarah.j", "user")
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "user", s.User.Role)
	assert.False(t, s.User.OnboardingComplete)

	status, _ := api.do(http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "sarah.j", "password": "password123", "role": "user", "name": "Again",
	}, "")
	assert.Equal(t, http.StatusConflict, status)

	status, env := api.login("sarah.j", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, status)
	wrongPassword := env.Message

	status, env = api.login("nobody", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, wrongPassword, env.Message)

	status, env = api.do(http.MethodPost, "/api/auth/signin", fiber.Map{"username": "sarah.j", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, status)
	signedIn := decode[session](t, env)
	assert.Equal(t, s.User.ID, signedIn.User.ID)

	status, env = api.do(http.MethodGet, "/api/auth/me", nil, signedIn.Token)
	require.Equal(t, http.StatusOK, status)
	me := decode[services.AccountView](t, env)
	assert.Equal(t, "sarah.j", me.Username)
}

func TestAuth_SignupValidation(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "ab", "password": "short", "role": "admin", "name": "x",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Details, "username")
	assert.Contains(t, env.Details, "password")
	assert.Contains(t, env.Details, "role")

	status, _ = api.do(http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "sarah.j", "password": "password123", "role": "user", "name": "x", "isAdmin": true,
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthMiddleware_StatusCodes(t *testing.T) {
	api := newTestAPI(t)
	s := api.signup("sarah.j", "user")

	status, _ := api.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodGet, "/api/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusForbidden, status)

	forged, err := jwt.GenerateAccessToken(s.User.ID, "sarah.j", "sarah.j", "user", "some-other-secret")
	require.NoError(t, err)
	status, _ = api.do(http.MethodGet, "/api/auth/me", nil, forged)
	assert.Equal(t, http.StatusForbidden, status)

	past := time.Now().Add(-25 * time.Hour)
	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		UserID:   s.User.ID,
		Role:     "user",
		Username: "sarah.j",
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(past),
			ExpiresAt: gojwt.NewNumericDate(past.Add(jwt.AccessTokenTTL)),
			Issuer:    "roomfinder",
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodPost, "/api/users/complete-profile"},
		{http.MethodGet, "/api/users/profile/" + s.User.ID + "/full"},
		{http.MethodGet, "/api/users/saved-listings"},
		{http.MethodPost, "/api/listers/listers/sarah.j/listings"},
		{http.MethodPut, "/api/listers/profile"},
		{http.MethodDelete, "/api/listers/listers/sarah.j"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodPost, "/api/report/report"},
		{http.MethodGet, "/api/report/report"},
	}
	for _, route := range protected {
		status, env := api.do(route.method, route.path, nil, expired)
		assert.Equal(t, http.StatusForbidden, status, "%s %s", route.method, route.path)
		assert.Equal(t, "Access token expired", env.Message, "%s %s", route.method, route.path)
	}

	status, _ = api.do(http.MethodGet, "/api/auth/me", nil, s.Token)
	assert.Equal(t, http.StatusOK, status)
}

func TestListings_CreateSearchUpdate(t *testing.T) {
	api := newTestAPI(t)
	alice := api.lister("alice")
	mallory := api.lister("mallory")

	created := api.createListing(alice, 1800)
	assert.Equal(t, 0.8, created.DistanceFromUniv)
	assert.Equal(t, 1800.0, created.Rent)
	assert.Equal(t, "Sunny two bedroom", created.Description)
	assert.Equal(t, 2, created.NumberOfRooms)
	assert.Equal(t, 1.5, created.NumberOfBathrooms)
	assert.Equal(t, 900.0, created.SquareFoot)
	assert.Equal(t, "45 Mission Hill Ave, Boston, MA", created.Address)
	assert.Equal(t, 42.3330, created.Latitude)
	assert.Equal(t, -71.1036, created.Longitude)
	pricey := api.createListing(alice, 3600)

	status, env := api.do(http.MethodGet, "/api/listers/listings?rent=1500-2500", nil, "")
	require.Equal(t, http.StatusOK, status)
	found := decode[[]listing](t, env)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
	assert.Equal(t, "alice", found[0].ListerUsername)

	for _, query := range []string{"rent=3500%2B", "rent=3500+"} {
		status, env = api.do(http.MethodGet, "/api/listers/listings?"+query, nil, "")
		require.Equal(t, http.StatusOK, status, query)
		found = decode[[]listing](t, env)
		require.Len(t, found, 1, query)
		assert.Equal(t, pricey.ID, found[0].ID)
	}

	for query, want := range map[string]int{
		"rooms=2+":         2,
		"rooms=4+":         0,
		"rooms=2":          2,
		"bathrooms=1.5+":   2,
		"bathrooms=2.5+":   0,
		"bathrooms=2.5%2B": 0,
	} {
		status, env = api.do(http.MethodGet, "/api/listers/listings?"+query, nil, "")
		require.Equal(t, http.StatusOK, status, query)
		assert.Len(t, decode[[]listing](t, env), want, query)
	}

	status, env = api.do(http.MethodGet, "/api/listers/listings?latitude=42.3398&longitude=-71.0892", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]listing](t, env), 2)

	for _, bad := range []string{"rent=abc", "rent=2500-1500", "distance=1-", "latitude=42.3"} {
		status, _ = api.do(http.MethodGet, "/api/listers/listings?"+bad, nil, "")
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}

	status, env = api.do(http.MethodGet, "/api/listers/listings/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, status)
	detail := decode[struct {
		Listing listing `json:"listing"`
		Lister  struct {
			Username string `json:"username"`
		} `json:"lister"`
	}](t, env)
	assert.Equal(t, created.ID, detail.Listing.ID)
	assert.Equal(t, "alice", detail.Lister.Username)

	path := "/api/listers/listers/alice/listings/" + created.ID
	status, _ = api.do(http.MethodPut, path, fiber.Map{"rent": 1.0}, mallory.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodPost, "/api/listers/listers/alice/listings", listingBody(10), mallory.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = api.do(http.MethodPut, path, fiber.Map{"rent": 1950.0}, alice.Token)
	require.Equal(t, http.StatusOK, status)
	updated := decode[listing](t, env)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 1950.0, updated.Rent)
	assert.Equal(t, "Sunny two bedroom", updated.Description)

	status, _ = api.do(http.MethodDelete, path, nil, alice.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListings_SearchIsCached(t *testing.T) {
	api := newTestAPI(t)

	resp := api.raw(http.MethodGet, "/api/listers/listings", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=30", resp.Header.Get(fiber.HeaderCacheControl))
}

func TestListings_OwnerListingsAreNotCached(t *testing.T) {
	api := newTestAPI(t)
	alice := api.lister("alice")

	for _, path := range []string{"/api/listers/listers/alice", "/api/listers/listers/alice/listings"} {
		resp := api.raw(http.MethodGet, path, nil, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "no-store", path)
	}

	created := api.createListing(alice, 1400)
	resp := api.raw(http.MethodGet, "/api/listers/listers/alice/listings/"+created.ID, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "no-store")

	status, env := api.do(http.MethodGet, "/api/listers/listers/alice/listings", nil, "")
	require.Equal(t, http.StatusOK, status)
	found := decode[[]listing](t, env)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
}

func TestListers_DeleteRevokesLogin(t *testing.T) {
	api := newTestAPI(t)
	alice := api.lister("alice")
	api.createListing(alice, 1200)

	status, _ := api.do(http.MethodDelete, "/api/listers/listers/alice", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodDelete, "/api/listers/listers/alice", nil, alice.Token)
	require.Equal(t, http.StatusOK, status)

	status, _ = api.login("alice", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := api.do(http.MethodGet, "/api/listers/listings", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]listing](t, env))

	status, _ = api.do(http.MethodGet, "/api/listers/listers/alice", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUsers_OnboardingAndProfile(t *testing.T) {
	api := newTestAPI(t)
	s := api.seeker("sarah.j", 1500)

	status, env := api.do(http.MethodGet, "/api/auth/me", nil, s.Token)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[services.AccountView](t, env).OnboardingComplete)

	status, _ = api.do(http.MethodPost, "/api/users/complete-profile", fiber.Map{
		"gender": "Female", "budget": 1, "leaseDuration": 1,
		"contactInfo": fiber.Map{"email": "x@example.com", "preferredContact": "email"},
	}, s.Token)
	assert.Equal(t, http.StatusConflict, status)

	lister := api.lister("alice")
	status, _ = api.do(http.MethodPost, "/api/users/complete-profile", fiber.Map{
		"gender": "Female", "budget": 1, "leaseDuration": 1,
		"contactInfo": fiber.Map{"email": "x@example.com", "preferredContact": "email"},
	}, lister.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = api.do(http.MethodPut, "/api/users/update-profile", fiber.Map{"name": "Sarah Johnson", "budget": 1700}, s.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"budget":1700`)

	status, env = api.do(http.MethodGet, "/api/auth/me", nil, s.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Sarah Johnson", decode[services.AccountView](t, env).Name)

	status, env = api.do(http.MethodGet, "/api/users/profile/"+s.User.ID, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), "contactInfo")
	assert.NotContains(t, string(env.Data), "savedListingIds")

	status, _ = api.do(http.MethodGet, "/api/users/profile/"+s.User.ID+"/full", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, env = api.do(http.MethodGet, "/api/users/profile/"+s.User.ID+"/full", nil, lister.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "sarah.j@example.com")
}

func TestUsers_PotentialRoommatesExcludesCaller(t *testing.T) {
	api := newTestAPI(t)
	me := api.seeker("me", 1500)
	other := api.seeker("other", 1600)

	ids := func(env envelope) []string {
		var profiles []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &profiles))
		out := make([]string, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, p.ID)
		}
		return out
	}

	status, env := api.do(http.MethodGet, "/api/users/potential-roommates", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []string{me.User.ID, other.User.ID}, ids(env))

	status, env = api.do(http.MethodGet, "/api/users/potential-roommates", nil, me.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{other.User.ID}, ids(env))

	status, env = api.do(http.MethodGet, "/api/users/potential-roommates?budget=1550%2B", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{other.User.ID}, ids(env))

	status, env = api.do(http.MethodGet, "/api/users/potential-roommates?genderPreference=single-gender", nil, me.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{other.User.ID}, ids(env))

	status, env = api.do(http.MethodGet, "/api/users/potential-roommates?genderPreference=multiple-gender", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, ids(env))

	status, _ = api.do(http.MethodGet, "/api/users/potential-roommates?smoking=sometimes", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUsers_SavedListings(t *testing.T) {
	api := newTestAPI(t)
	s := api.seeker("sarah.j", 1500)
	owner := api.lister("john.smith")
	first := api.createListing(owner, 1800)
	second := api.createListing(owner, 2100)

	for i := 0; i < 2; i++ {
		status, _ := api.do(http.MethodPost, "/api/users/saved-listings/"+first.ID, nil, s.Token)
		require.Equal(t, http.StatusOK, status)
	}
	status, _ := api.do(http.MethodPost, "/api/users/saved-listings/"+s.User.ID+"/"+second.ID, nil, s.Token)
	require.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodPost, "/api/users/saved-listings/"+owner.User.ID+"/"+second.ID, nil, s.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodPost, "/api/users/saved-listings/missing", nil, s.Token)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(http.MethodGet, "/api/users/saved-listings", nil, owner.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := api.do(http.MethodGet, "/api/users/saved-listings", nil, s.Token)
	require.Equal(t, http.StatusOK, status)
	saved := decode[[]listing](t, env)
	require.Len(t, saved, 2)
	assert.Equal(t, first.ID, saved[0].ID)
	assert.Equal(t, second.ID, saved[1].ID)

	// a deleted listing disappears from reads
	status, _ = api.do(http.MethodDelete, "/api/listers/listers/john.smith/listings/"+first.ID, nil, owner.Token)
	require.Equal(t, http.StatusOK, status)
	status, env = api.do(http.MethodGet, "/api/users/saved-listings", nil, s.Token)
	require.Equal(t, http.StatusOK, status)
	saved = decode[[]listing](t, env)
	require.Len(t, saved, 1)
	assert.Equal(t, second.ID, saved[0].ID)

	status, _ = api.do(http.MethodDelete, "/api/users/saved-listings/"+second.ID, nil, s.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodDelete, "/api/users/saved-listings/"+second.ID, nil, s.Token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdmin_ModerationAndReports(t *testing.T) {
	api := newTestAPI(t)
	seeder := services.NewSeedService(api.store, api.cfg, zap.NewNop())
	require.NoError(t, seeder.SeedAdmin(context.Background(), config.SeedConfig{
		AdminUsername: "root", AdminPassword: "bootstrap-pass", AdminName: "Root",
	}))

	status, env := api.login("root", "bootstrap-pass")
	require.Equal(t, http.StatusOK, status)
	admin := decode[session](t, env)
	assert.Equal(t, "admin", admin.User.Role)

	s := api.seeker("sarah.j", 1500)
	api.seeker("emma.w", 1400)
	owner := api.lister("alice")
	doomed := api.createListing(owner, 1000)

	status, _ = api.do(http.MethodGet, "/api/admin/users", nil, s.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodGet, "/api/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = api.do(http.MethodGet, "/api/admin/users", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)

	status, _ = api.do(http.MethodGet, "/api/admin/dashboard", nil, s.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = api.do(http.MethodGet, "/api/admin/dashboard", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	stats := decode[services.AdminDashboardData](t, env)
	assert.EqualValues(t, 1, stats.TotalAdmins)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalListers)
	assert.EqualValues(t, 1, stats.TotalListings)
	assert.Equal(t, 1000.0, stats.AverageRent)

	status, env = api.do(http.MethodGet, "/api/admin/users?limit=1&page=2", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	page := decode[struct {
		Items []json.RawMessage `json:"items"`
		Meta  struct {
			Total   int  `json:"total"`
			HasPrev bool `json:"hasPrev"`
		} `json:"meta"`
	}](t, env)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Meta.Total)
	assert.True(t, page.Meta.HasPrev)

	status, env = api.do(http.MethodGet, "/api/admin/listings", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	listings := decode[[]listing](t, env)
	require.Len(t, listings, 1)
	assert.Equal(t, "alice", listings[0].ListerUsername)

	status, _ = api.do(http.MethodDelete, "/api/admin/listings/"+doomed.ID, nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodDelete, "/api/admin/listings/"+doomed.ID, nil, admin.Token)
	assert.Equal(t, http.StatusNotFound, status)

	// reports
	status, env = api.do(http.MethodPost, "/api/report/report", fiber.Map{
		"userId": owner.User.ID, "username": "alice", "reason": "Fake Profile", "comments": "Never answers",
	}, s.Token)
	require.Equal(t, http.StatusCreated, status, env.Message)
	reportID := decode[struct {
		ID string `json:"id"`
	}](t, env).ID

	status, _ = api.do(http.MethodPost, "/api/report/report", fiber.Map{
		"userId": owner.User.ID, "username": "alice", "reason": "Boring",
	}, s.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do(http.MethodGet, "/api/report/report", nil, s.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = api.do(http.MethodGet, "/api/report/report", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"reportedBy":"sarah.j"`)

	status, _ = api.do(http.MethodDelete, "/api/report/report/"+reportID, nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)

	// account removal
	status, _ = api.do(http.MethodDelete, "/api/admin/users/"+s.User.ID, nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	status, _ = api.login("sarah.j", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodDelete, "/api/admin/listers/"+owner.User.ID, nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	status, _ = api.login("alice", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodDelete, "/api/admin/admin/root", nil, admin.Token)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	resp := api.raw(http.MethodGet, "/health", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.raw(http.MethodGet, "/metrics", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `http_requests_total{method="GET",path="/health",status_code="200"} 1`))
}
