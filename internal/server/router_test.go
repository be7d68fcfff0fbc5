package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-rooms/internal/identity"
	"auction-rooms/internal/models"
	"auction-rooms/services/auction/handler"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret-42"

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := handler.NewMockAuctionServiceInterface(ctrl)
	verifier := identity.NewVerifier(testSecret)
	router := SetupRouter(mockService, verifier)

	token, err := verifier.Issue("seller1", time.Hour)
	require.NoError(t, err)

	t.Run("health_needs_no_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics_needs_no_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("ads_require_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ads", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "unauthenticated", resp["kind"])
	})

	t.Run("owner_comes_from_token", func(t *testing.T) {
		mockService.EXPECT().
			CreateAd(gomock.Any(), "seller1", models.AdDraft{ProductName: "lamp", BasePrice: 10}).
			Return(models.Ad{ID: "ad1", OwnerID: "seller1"}, models.Room{ID: "room1", AdID: "ad1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/ads", strings.NewReader(`{"product_name":"lamp","base_price":10}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("put_is_alias_for_patch", func(t *testing.T) {
		for _, method := range []string{http.MethodPatch, http.MethodPut} {
			mockService.EXPECT().
				UpdateAd(gomock.Any(), "ad1", gomock.Any()).
				Return(models.Ad{ID: "ad1", Category: "home"}, nil)

			req := httptest.NewRequest(method, "/ads/ad1", strings.NewReader(`{"category":"home"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code, method)
		}
	})

	t.Run("room_route", func(t *testing.T) {
		mockService.EXPECT().
			GetRoom(gomock.Any(), "ad1").
			Return(models.RoomSnapshot{RoomID: "room1", AdID: "ad1", Status: models.RoomOpen}, nil)

		req := httptest.NewRequest(http.MethodGet, "/ads/ad1/room", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})
}
