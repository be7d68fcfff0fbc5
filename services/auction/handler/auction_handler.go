package handler

import (
	"context"
	"net/http"
	"time"

	"auction-rooms/internal/identity"
	"auction-rooms/internal/models"
	"auction-rooms/services/auction/helpers"
	"auction-rooms/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_handler.go -package=handler

type AuctionServiceInterface interface {
	CreateAd(ctx context.Context, ownerID string, draft models.AdDraft) (models.Ad, models.Room, error)
	ListAds(ctx context.Context) ([]models.Ad, error)
	GetAd(ctx context.Context, adID string) (models.Ad, error)
	UpdateAd(ctx context.Context, adID string, patch models.AdPatch) (models.Ad, error)
	PlaceBid(ctx context.Context, adID, bidderID string, amount float64) (models.BidReceipt, error)
	GetBids(ctx context.Context, adID string) ([]models.Bid, error)
	GetRoom(ctx context.Context, adID string) (models.RoomSnapshot, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAdHandler handles POST /ads
func (h *AuctionHandler) CreateAdHandler(c *gin.Context) {
	ownerID, err := identity.CurrentUser(c)
	if err != nil {
		helpers.HandleServiceError(c, "CreateAdHandler", err, nil)
		return
	}

	var req helpers.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAdHandler", err)
		return
	}

	ad, room, err := h.service.CreateAd(c.Request.Context(), ownerID, req.ToAdDraft())
	if err != nil {
		helpers.HandleServiceError(c, "CreateAdHandler", err, map[string]any{
			"owner_id":     ownerID,
			"product_name": req.ProductName,
		})
		return
	}

	resp := helpers.CreateAdResponse{
		Ad:   helpers.NewAdResponse(ad),
		Room: helpers.NewRoomResponse(room),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "ad created successfully")
	helpers.LogSuccess("CreateAdHandler", "ad created successfully", map[string]any{
		"ad_id":    ad.ID,
		"room_id":  room.ID,
		"owner_id": ownerID,
		"deadline": room.Deadline,
	})
}

// ListAdsHandler handles GET /ads
func (h *AuctionHandler) ListAdsHandler(c *gin.Context) {
	ads, err := h.service.ListAds(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "ListAdsHandler", err, nil)
		return
	}

	resp := make([]helpers.AdResponse, 0, len(ads))
	for _, ad := range ads {
		resp = append(resp, helpers.NewAdResponse(ad))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "ads retrieved successfully")
	helpers.LogSuccess("ListAdsHandler", "ads retrieved successfully", map[string]any{"count": len(resp)})
}

// GetAdHandler handles GET /ads/:id
func (h *AuctionHandler) GetAdHandler(c *gin.Context) {
	adID := c.Param("id")
	ad, err := h.service.GetAd(c.Request.Context(), adID)
	if err != nil {
		helpers.HandleServiceError(c, "GetAdHandler", err, map[string]any{"ad_id": adID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAdResponse(ad), "ad retrieved successfully")
}

// UpdateAdHandler handles PATCH /ads/:id and PUT /ads/:id
func (h *AuctionHandler) UpdateAdHandler(c *gin.Context) {
	adID := c.Param("id")

	var req helpers.UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAdHandler", err)
		return
	}

	ad, err := h.service.UpdateAd(c.Request.Context(), adID, req.ToAdPatch())
	if err != nil {
		helpers.HandleServiceError(c, "UpdateAdHandler", err, map[string]any{"ad_id": adID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAdResponse(ad), "ad updated successfully")
	helpers.LogSuccess("UpdateAdHandler", "ad updated successfully", map[string]any{"ad_id": adID})
}

// PlaceBidHandler handles POST /ads/:id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	adID := c.Param("id")
	bidderID, err := identity.CurrentUser(c)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, nil)
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	receipt, err := h.service.PlaceBid(c.Request.Context(), adID, bidderID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"ad_id":     adID,
			"bidder_id": bidderID,
			"amount":    req.Amount,
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		BidResponse: helpers.NewBidResponse(receipt.Bid),
		Deadline:    receipt.Deadline.UTC().Format(time.RFC3339),
		Extended:    receipt.Extended,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":    receipt.Bid.ID,
		"ad_id":     adID,
		"bidder_id": bidderID,
		"amount":    receipt.Bid.Amount,
		"seq":       receipt.Bid.Seq,
		"extended":  receipt.Extended,
	})
}

// GetBidsHandler handles GET /ads/:id/bids
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	adID := c.Param("id")
	bids, err := h.service.GetBids(c.Request.Context(), adID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsHandler", err, map[string]any{"ad_id": adID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, helpers.NewBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"ad_id": adID,
		"count": len(resp),
	})
}

// GetRoomHandler handles GET /ads/:id/room
func (h *AuctionHandler) GetRoomHandler(c *gin.Context) {
	adID := c.Param("id")
	snap, err := h.service.GetRoom(c.Request.Context(), adID)
	if err != nil {
		helpers.HandleServiceError(c, "GetRoomHandler", err, map[string]any{"ad_id": adID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewRoomSnapshotResponse(snap), "room retrieved successfully")
}
