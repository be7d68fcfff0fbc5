package integrationtests

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateAd(t *testing.T) {
	tests := []struct {
		name         string
		user         string
		request      any
		wantStatus   int
		wantKind     string
		wantDuration float64
	}{
		{
			name:         "Default_Duration",
			user:         "seller1",
			request:      map[string]any{"product_name": "lamp", "base_price": 50},
			wantStatus:   http.StatusCreated,
			wantDuration: 300,
		},
		{
			name:         "Explicit_Duration",
			user:         "seller1",
			request:      map[string]any{"product_name": "lamp", "base_price": 50, "duration": 90},
			wantStatus:   http.StatusCreated,
			wantDuration: 90,
		},
		{
			name:       "Zero_Duration",
			user:       "seller1",
			request:    map[string]any{"product_name": "lamp", "base_price": 50, "duration": 0},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
		},
		{
			name:       "Blank_Product_Name",
			user:       "seller1",
			request:    map[string]any{"product_name": "   ", "base_price": 50},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
		},
		{
			name:       "Invalid_JSON",
			user:       "seller1",
			request:    "{product_name: 'missing quotes'}",
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
		},
		{
			name:       "No_Token",
			request:    map[string]any{"product_name": "lamp", "base_price": 50},
			wantStatus: http.StatusUnauthorized,
			wantKind:   "unauthenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := SetupTestApp(t)
			resp, w := app.ExecuteRequestAndParse(t, tt.user, http.MethodPost, "/ads", tt.request)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantKind != "" {
				require.Equal(t, tt.wantKind, resp["kind"])
				return
			}

			data := resp["data"].(map[string]any)
			ad := data["ad"].(map[string]any)
			require.Equal(t, tt.user, ad["owner_id"])
			require.Equal(t, tt.wantDuration, ad["duration"])
			require.Equal(t, tt.wantDuration, ad["timer"])
			require.Equal(t, ad["base_price"], ad["current_price"])

			deadline, err := time.Parse(time.RFC3339, data["room"].(map[string]any)["deadline"].(string))
			require.NoError(t, err)
			require.Equal(t, start.Add(time.Duration(tt.wantDuration)*time.Second), deadline)
		})
	}
}

func TestAuctionLifecycle(t *testing.T) {
	app := SetupTestApp(t)
	adID, roomID := app.CreateAd(t, "seller1", map[string]any{"product_name": "guitar", "base_price": 100, "duration": 120})

	// opening bid at the base price is accepted
	resp, w := app.ExecuteRequestAndParse(t, "alice", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := resp["data"].(map[string]any)
	require.Equal(t, roomID, first["room_id"])
	require.Equal(t, 1.0, first["seq"])
	require.Equal(t, false, first["extended"])

	// equal to the high bid is too low
	resp, w = app.ExecuteRequestAndParse(t, "bob", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 100})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "bid_too_low", resp["kind"])

	// base price is locked once bidding started
	resp, w = app.ExecuteRequestAndParse(t, "seller1", http.MethodPatch, "/ads/"+adID, map[string]any{"base_price": 10})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "ad_locked", resp["kind"])

	// current_price is never writable
	resp, w = app.ExecuteRequestAndParse(t, "seller1", http.MethodPut, "/ads/"+adID, map[string]any{"current_price": 1000})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "validation_error", resp["kind"])

	// a bid inside the snipe window pushes the deadline out
	app.Tick(100 * time.Second)
	resp, w = app.ExecuteRequestAndParse(t, "bob", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 150})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := resp["data"].(map[string]any)
	require.Equal(t, true, second["extended"])
	require.Equal(t, start.Add(130*time.Second).Format(time.RFC3339), second["deadline"])

	resp, w = app.ExecuteRequestAndParse(t, "alice", http.MethodGet, "/ads/"+adID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ad := resp["data"].(map[string]any)
	require.Equal(t, 150.0, ad["current_price"])
	require.Equal(t, 30.0, ad["timer"])

	// the original deadline passes without settling
	app.Tick(25 * time.Second)
	resp, w = app.ExecuteRequestAndParse(t, "alice", http.MethodGet, "/ads/"+adID+"/room", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "active", resp["data"].(map[string]any)["status"])

	// the extended deadline settles the room to bob
	app.Tick(10 * time.Second)
	resp, w = app.ExecuteRequestAndParse(t, "alice", http.MethodGet, "/ads/"+adID+"/room", nil)
	require.Equal(t, http.StatusOK, w.Code)
	room := resp["data"].(map[string]any)
	require.Equal(t, "settled", room["status"])
	require.Equal(t, "bob", room["winner_id"])
	require.Equal(t, 150.0, room["final_price"])
	require.Equal(t, 0.0, room["timer"])

	resp, w = app.ExecuteRequestAndParse(t, "carol", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 500})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "room_closed", resp["kind"])

	// after the grace period the room is archived but still readable
	app.Tick(2 * time.Minute)
	resp, w = app.ExecuteRequestAndParse(t, "carol", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 500})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not_found", resp["kind"])

	resp, w = app.ExecuteRequestAndParse(t, "alice", http.MethodGet, "/ads/"+adID+"/room", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "bob", resp["data"].(map[string]any)["winner_id"])

	resp, w = app.ExecuteRequestAndParse(t, "alice", http.MethodGet, "/ads/"+adID+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bids := resp["data"].([]any)
	require.Len(t, bids, 2)
	require.Equal(t, "alice", bids[0].(map[string]any)["bidder_id"])
	require.Equal(t, "bob", bids[1].(map[string]any)["bidder_id"])

	// descriptive edits still work on an archived ad
	resp, w = app.ExecuteRequestAndParse(t, "seller1", http.MethodPatch, "/ads/"+adID, map[string]any{"category": "music"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "music", resp["data"].(map[string]any)["category"])
	require.Equal(t, 150.0, resp["data"].(map[string]any)["current_price"])
}

func TestRepriceBeforeFirstBid(t *testing.T) {
	app := SetupTestApp(t)
	adID, _ := app.CreateAd(t, "seller1", map[string]any{"product_name": "bike", "base_price": 80})

	resp, w := app.ExecuteRequestAndParse(t, "seller1", http.MethodPatch, "/ads/"+adID, map[string]any{"base_price": 60})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ad := resp["data"].(map[string]any)
	require.Equal(t, 60.0, ad["base_price"])
	require.Equal(t, 60.0, ad["current_price"])

	resp, w = app.ExecuteRequestAndParse(t, "bidder1", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 59})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "bid_too_low", resp["kind"])

	_, w = app.ExecuteRequestAndParse(t, "bidder1", http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": 60})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestUnsoldAuction(t *testing.T) {
	app := SetupTestApp(t)
	adID, _ := app.CreateAd(t, "seller1", map[string]any{"product_name": "vase", "base_price": 20, "duration": 10})

	app.Tick(11 * time.Second)

	resp, w := app.ExecuteRequestAndParse(t, "seller1", http.MethodGet, "/ads/"+adID+"/room", nil)
	require.Equal(t, http.StatusOK, w.Code)
	room := resp["data"].(map[string]any)
	require.Equal(t, "settled", room["status"])
	require.Nil(t, room["winner_id"])
	require.Equal(t, 0.0, room["bid_count"])
}

func TestListAdsNewestFirst(t *testing.T) {
	app := SetupTestApp(t)
	for i := range 3 {
		app.CreateAd(t, "seller1", map[string]any{"product_name": fmt.Sprintf("item%d", i), "base_price": 10})
		app.Clock.Advance(time.Second)
	}

	resp, w := app.ExecuteRequestAndParse(t, "viewer", http.MethodGet, "/ads", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ads := resp["data"].([]any)
	require.Len(t, ads, 3)
	require.Equal(t, "item2", ads[0].(map[string]any)["product_name"])
	require.Equal(t, "item0", ads[2].(map[string]any)["product_name"])
}

func TestUnknownAd(t *testing.T) {
	app := SetupTestApp(t)

	for _, path := range []string{"/ads/nope", "/ads/nope/bids", "/ads/nope/room"} {
		resp, w := app.ExecuteRequestAndParse(t, "viewer", http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		require.Equal(t, "not_found", resp["kind"], path)
	}

	_, w := app.ExecuteRequestAndParse(t, "bidder", http.MethodPost, "/ads/nope/bids", map[string]any{"amount": 10})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestConcurrentBidsOverHTTP(t *testing.T) {
	app := SetupTestApp(t)
	adID, _ := app.CreateAd(t, "seller1", map[string]any{"product_name": "painting", "base_price": 1})

	const bidders = 50
	var wg sync.WaitGroup
	for i := range bidders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, w := app.ExecuteRequestAndParse(t, fmt.Sprintf("user%d", i), http.MethodPost, "/ads/"+adID+"/bids", map[string]any{"amount": float64(i + 1)})
			if w.Code != http.StatusCreated && w.Code != http.StatusConflict {
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	resp, w := app.ExecuteRequestAndParse(t, "viewer", http.MethodGet, "/ads/"+adID+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bids := resp["data"].([]any)
	require.NotEmpty(t, bids)

	prev := 0.0
	for i, raw := range bids {
		bid := raw.(map[string]any)
		require.Equal(t, float64(i+1), bid["seq"])
		require.Greater(t, bid["amount"].(float64), prev)
		prev = bid["amount"].(float64)
	}
	require.Equal(t, float64(bidders), prev)
}
