package helpers

import (
	"time"

	"auction-rooms/internal/models"
)

// Request/Response DTOs
type CreateAdRequest struct {
	ProductName string   `json:"product_name" binding:"required"`
	BasePrice   *float64 `json:"base_price" binding:"required,gte=0"`
	Duration    *int     `json:"duration"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
}

// UpdateAdRequest is a partial update; absent fields are left unchanged
type UpdateAdRequest struct {
	ProductName  *string  `json:"product_name"`
	BasePrice    *float64 `json:"base_price"`
	Image        *string  `json:"image"`
	Category     *string  `json:"category"`
	CurrentPrice *float64 `json:"current_price"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type AdResponse struct {
	ID           string  `json:"id"`
	ProductName  string  `json:"product_name"`
	BasePrice    float64 `json:"base_price"`
	CurrentPrice float64 `json:"current_price"`
	Duration     int     `json:"duration"`
	Timer        int     `json:"timer"`
	Image        string  `json:"image,omitempty"`
	Category     string  `json:"category,omitempty"`
	OwnerID      string  `json:"owner_id"`
	RoomID       string  `json:"room_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type RoomResponse struct {
	ID        string `json:"id"`
	AdID      string `json:"ad_id"`
	Status    string `json:"status"`
	Deadline  string `json:"deadline"`
	CreatedAt string `json:"created_at"`
}

type CreateAdResponse struct {
	Ad   AdResponse   `json:"ad"`
	Room RoomResponse `json:"room"`
}

type BidResponse struct {
	BidID    string  `json:"bid_id"`
	AdID     string  `json:"ad_id"`
	RoomID   string  `json:"room_id"`
	BidderID string  `json:"bidder_id"`
	Amount   float64 `json:"amount"`
	Seq      uint64  `json:"seq"`
	PlacedAt string  `json:"placed_at"`
}

type PlaceBidResponse struct {
	BidResponse
	Deadline string `json:"deadline"`
	Extended bool   `json:"extended"`
}

type RoomSnapshotResponse struct {
	RoomID       string       `json:"room_id"`
	AdID         string       `json:"ad_id"`
	Status       string       `json:"status"`
	Deadline     string       `json:"deadline"`
	Timer        int          `json:"timer"`
	BasePrice    float64      `json:"base_price"`
	CurrentPrice float64      `json:"current_price"`
	HighBid      *BidResponse `json:"high_bid,omitempty"`
	BidCount     int          `json:"bid_count"`
	WinnerID     string       `json:"winner_id,omitempty"`
	FinalPrice   float64      `json:"final_price,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToAdDraft converts the request into the service input
func (r CreateAdRequest) ToAdDraft() models.AdDraft {
	draft := models.AdDraft{
		ProductName: r.ProductName,
		Duration:    r.Duration,
		Image:       r.Image,
		Category:    r.Category,
	}
	if r.BasePrice != nil {
		draft.BasePrice = *r.BasePrice
	}
	return draft
}

// ToAdPatch converts the request into the service input
func (r UpdateAdRequest) ToAdPatch() models.AdPatch {
	return models.AdPatch{
		ProductName:  r.ProductName,
		BasePrice:    r.BasePrice,
		Image:        r.Image,
		Category:     r.Category,
		CurrentPrice: r.CurrentPrice,
	}
}

func NewAdResponse(ad models.Ad) AdResponse {
	return AdResponse{
		ID:           ad.ID,
		ProductName:  ad.ProductName,
		BasePrice:    ad.BasePrice,
		CurrentPrice: ad.CurrentPrice,
		Duration:     ad.Duration,
		Timer:        ad.Timer,
		Image:        ad.Image,
		Category:     ad.Category,
		OwnerID:      ad.OwnerID,
		RoomID:       ad.RoomID,
		CreatedAt:    formatTime(ad.CreatedAt),
		UpdatedAt:    formatTime(ad.UpdatedAt),
	}
}

func NewRoomResponse(room models.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID,
		AdID:      room.AdID,
		Status:    string(room.Status),
		Deadline:  formatTime(room.Deadline),
		CreatedAt: formatTime(room.CreatedAt),
	}
}

func NewBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:    bid.ID,
		AdID:     bid.AdID,
		RoomID:   bid.RoomID,
		BidderID: bid.BidderID,
		Amount:   bid.Amount,
		Seq:      bid.Seq,
		PlacedAt: formatTime(bid.PlacedAt),
	}
}

func NewRoomSnapshotResponse(snap models.RoomSnapshot) RoomSnapshotResponse {
	resp := RoomSnapshotResponse{
		RoomID:       snap.RoomID,
		AdID:         snap.AdID,
		Status:       string(snap.Status),
		Deadline:     formatTime(snap.Deadline),
		Timer:        snap.Timer,
		BasePrice:    snap.BasePrice,
		CurrentPrice: snap.CurrentPrice,
		BidCount:     snap.BidCount,
		WinnerID:     snap.WinnerID,
		FinalPrice:   snap.FinalPrice,
	}
	if snap.HighBid != nil {
		high := NewBidResponse(*snap.HighBid)
		resp.HighBid = &high
	}
	return resp
}
