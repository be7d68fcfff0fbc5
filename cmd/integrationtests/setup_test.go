package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-rooms/internal/auctionService"
	"auction-rooms/internal/clock"
	"auction-rooms/internal/identity"
	"auction-rooms/internal/repository"
	"auction-rooms/internal/server"
	"auction-rooms/internal/supervisor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "integration-test-secret"

var start = time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)

// TestApp is the full HTTP stack over the in-memory store with a hand-driven clock
type TestApp struct {
	Router     *gin.Engine
	Clock      *clock.Manual
	Supervisor *supervisor.Supervisor
	Store      *repository.MemoryStore
	verifier   *identity.Verifier
}

// SetupTestApp initializes the router with the in-memory store for integration testing.
func SetupTestApp(t *testing.T) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewManual(start)
	store := repository.NewMemoryStore()
	sup := supervisor.New(store, nil, clk, supervisor.Options{
		SnipeWindow: 30 * time.Second,
		LockWait:    time.Second,
		GracePeriod: time.Minute,
	})
	service := auction.NewAuctionService(store, sup, clk, 300)
	verifier := identity.NewVerifier(testSecret)

	return &TestApp{
		Router:     server.SetupRouter(service, verifier),
		Clock:      clk,
		Supervisor: sup,
		Store:      store,
		verifier:   verifier,
	}
}

// Tick moves the clock forward and runs one deadline scan
func (a *TestApp) Tick(d time.Duration) {
	a.Clock.Advance(d)
	a.Supervisor.ProcessDue(context.Background())
}

// ExecuteRequestAndParse executes an HTTP request as userID and parses the response envelope.
// An empty userID sends no Authorization header.
func (a *TestApp) ExecuteRequestAndParse(t *testing.T, userID, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := a.verifier.Issue(userID, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// CreateAd lists an ad as sellerID and returns the ad and room ids
func (a *TestApp) CreateAd(t *testing.T, sellerID string, body map[string]any) (string, string) {
	t.Helper()
	resp, w := a.ExecuteRequestAndParse(t, sellerID, "POST", "/ads", body)
	require.Equal(t, 201, w.Code, w.Body.String())

	data := resp["data"].(map[string]any)
	ad := data["ad"].(map[string]any)
	room := data["room"].(map[string]any)
	return ad["id"].(string), room["id"].(string)
}
