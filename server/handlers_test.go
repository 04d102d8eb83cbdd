package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftvault/cfg"
	"giftvault/clients/tonnel"
	"giftvault/repo"
	"giftvault/repo/models"
	"giftvault/server/entity"
	"giftvault/service"
)

type fakeService struct {
	service.IGiftService

	user     *models.User
	gifts    map[string]models.Gift
	quote    *service.Quote
	quoteErr error

	creditedTo string
	withdrawn  string
}

func (f *fakeService) GetOrCreateUser(_ context.Context, id, username string) (*models.User, error) {
	if f.user != nil {
		return f.user, nil
	}
	return &models.User{ID: id, Username: username}, nil
}

func (f *fakeService) LinkWallet(_ context.Context, id, wallet string) (*models.User, error) {
	if !strings.HasPrefix(wallet, "EQ") && !strings.HasPrefix(wallet, "UQ") {
		return nil, service.ErrInvalidWallet
	}
	return &models.User{ID: id, Wallet: wallet}, nil
}

func (f *fakeService) ListGifts(_ context.Context, _ string) (map[string]models.Gift, error) {
	return f.gifts, nil
}

func (f *fakeService) CreditGift(_ context.Context, id string, _ *models.Gift) (string, error) {
	f.creditedTo = id
	return "g1", nil
}

func (f *fakeService) WithdrawGift(_ context.Context, _, giftID string) error {
	if giftID == "missing" {
		return repo.ErrNotFound
	}
	f.withdrawn = giftID
	return nil
}

func (f *fakeService) SearchMarket(_ context.Context, _ tonnel.Filter) ([]tonnel.Listing, error) {
	return []tonnel.Listing{{Name: "Plush Pepe", Price: 2450}}, nil
}

func (f *fakeService) FloorPrice(_ context.Context, _ string) (*service.Quote, error) {
	return f.quote, f.quoteErr
}

func newTestServer(svc service.IGiftService, config *cfg.Config) *Server {
	if config == nil {
		config = &cfg.Config{Port: "0"}
	}
	return New(config, svc, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeService{}, nil)
	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUser(t *testing.T) {
	s := newTestServer(&fakeService{}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/users/42?username=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestLinkWallet(t *testing.T) {
	s := newTestServer(&fakeService{}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/users/42/wallet",
		`{"wallet":"EQAnmo8tBH8gSErzWDrdlJiF8kxgfJEynKMIBxL2MkuHvPBc"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "EQAnmo8tBH8gSErzWDrdlJiF8kxgfJEynKMIBxL2MkuHvPBc", user.Wallet)
}

func TestLinkWalletInvalid(t *testing.T) {
	s := newTestServer(&fakeService{}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/users/42/wallet", `{"wallet":"nope"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGiftsSorted(t *testing.T) {
	svc := &fakeService{gifts: map[string]models.Gift{
		"b": {Name: "Second"},
		"a": {Name: "First"},
	}}
	s := newTestServer(svc, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/users/42/gifts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.GiftListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Gifts, 2)
	assert.Equal(t, "First", resp.Gifts[0].Name)
	assert.Equal(t, "Second", resp.Gifts[1].Name)
}

func TestCreditGift(t *testing.T) {
	svc := &fakeService{}
	s := newTestServer(svc, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/users/42/gifts", `{"name":"Homemade Cake"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "42", svc.creditedTo)
}

func TestCreditGiftBadBody(t *testing.T) {
	s := newTestServer(&fakeService{}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/users/42/gifts", `{"model":"no name"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithdrawGift(t *testing.T) {
	svc := &fakeService{}
	s := newTestServer(svc, nil)

	rec := doRequest(t, s, http.MethodDelete, "/api/users/42/gifts/g1", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "g1", svc.withdrawn)

	rec = doRequest(t, s, http.MethodDelete, "/api/users/42/gifts/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchMarket(t *testing.T) {
	s := newTestServer(&fakeService{}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/market/gifts?name=Plush+Pepe", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plush Pepe")
}

func TestFloorPriceNotFound(t *testing.T) {
	s := newTestServer(&fakeService{quoteErr: service.ErrNoListing}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/market/floor/Plush%20Pepe", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFloorPrice(t *testing.T) {
	s := newTestServer(&fakeService{quote: &service.Quote{Name: "Plush Pepe", Price: 2450, Source: "tonnel"}}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/market/floor/Plush%20Pepe", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var quote service.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, 2450.0, quote.Price)
}

func TestMutatingEndpointsRequireInitData(t *testing.T) {
	config := &cfg.Config{
		Port:             "0",
		TelegramBotToken: testBotToken,
		InitDataMaxAge:   24 * time.Hour,
	}
	s := newTestServer(&fakeService{}, config)

	// No header -> rejected.
	rec := doRequest(t, s, http.MethodPost, "/api/users/42/gifts", `{"name":"Homemade Cake"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid signed init data -> accepted.
	rec = doRequest(t, s, http.MethodPost, "/api/users/42/gifts", `{"name":"Homemade Cake"}`,
		map[string]string{initDataHeader: buildInitData(testBotToken, time.Now())})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Reads stay open.
	rec = doRequest(t, s, http.MethodGet, "/api/users/42/gifts", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
