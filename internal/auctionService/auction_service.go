package auction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/clock"
	"auction-rooms/internal/models"
	"auction-rooms/internal/repository"
	"auction-rooms/internal/supervisor"
	"auction-rooms/utils"
)

// AuctionService defines the business logic for ads and their auction rooms
type AuctionService struct {
	store           repository.AuctionStore
	rooms           *supervisor.Supervisor
	clock           clock.Clock
	defaultDuration int
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore, rooms *supervisor.Supervisor, clk clock.Clock, defaultDuration int) *AuctionService {
	if defaultDuration <= 0 {
		defaultDuration = models.DefaultDurationSeconds
	}
	return &AuctionService{
		store:           store,
		rooms:           rooms,
		clock:           clk,
		defaultDuration: defaultDuration,
	}
}

// CreateAd lists a new ad and opens its auction room
func (s *AuctionService) CreateAd(ctx context.Context, ownerID string, draft models.AdDraft) (models.Ad, models.Room, error) {
	if ownerID == "" {
		return models.Ad{}, models.Room{}, fmt.Errorf("service: %w - missing owner", auctionerrors.ErrUnauthenticated)
	}
	productName := strings.TrimSpace(draft.ProductName)
	if productName == "" {
		return models.Ad{}, models.Room{}, fmt.Errorf("service: %w - product name is required", auctionerrors.ErrValidation)
	}
	if err := validatePrice(draft.BasePrice); err != nil {
		return models.Ad{}, models.Room{}, err
	}

	duration := s.defaultDuration
	if draft.Duration != nil {
		if *draft.Duration <= 0 {
			return models.Ad{}, models.Room{}, fmt.Errorf("service: %w - duration must be positive", auctionerrors.ErrValidation)
		}
		duration = *draft.Duration
	}

	now := s.clock.Now()
	ad := models.Ad{
		ID:           utils.GenerateID(),
		ProductName:  productName,
		BasePrice:    draft.BasePrice,
		CurrentPrice: draft.BasePrice,
		Duration:     duration,
		Timer:        duration,
		Image:        draft.Image,
		Category:     draft.Category,
		OwnerID:      ownerID,
		RoomID:       utils.GenerateID(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	room := models.Room{
		ID:        ad.RoomID,
		AdID:      ad.ID,
		Status:    models.RoomOpen,
		Deadline:  now.Add(time.Duration(duration) * time.Second),
		CreatedAt: now,
	}

	if _, _, err := s.store.CreateAdAndRoom(ctx, ad, room); err != nil {
		return models.Ad{}, models.Room{}, fmt.Errorf("service: failed to create ad %q: %w", productName, err)
	}
	s.rooms.Register(ad, room)

	return ad, room, nil
}

// ListAds returns every ad, newest first, with live timers and prices
func (s *AuctionService) ListAds(ctx context.Context) ([]models.Ad, error) {
	ads, err := s.store.ListAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list ads: %w", err)
	}
	for i := range ads {
		ads[i] = s.withLiveState(ctx, ads[i])
	}
	return ads, nil
}

// GetAd returns a single ad with its live timer and price
func (s *AuctionService) GetAd(ctx context.Context, adID string) (models.Ad, error) {
	if adID == "" {
		return models.Ad{}, fmt.Errorf("service: %w - empty ad ID", auctionerrors.ErrValidation)
	}

	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return models.Ad{}, fmt.Errorf("service: failed to get ad %s: %w", adID, err)
	}
	return s.withLiveState(ctx, ad), nil
}

// UpdateAd applies a partial update. The base price may only change before the first bid.
func (s *AuctionService) UpdateAd(ctx context.Context, adID string, patch models.AdPatch) (models.Ad, error) {
	if patch.CurrentPrice != nil {
		return models.Ad{}, fmt.Errorf("service: %w - current_price only changes through bids", auctionerrors.ErrImmutableField)
	}
	if patch.ProductName != nil && strings.TrimSpace(*patch.ProductName) == "" {
		return models.Ad{}, fmt.Errorf("service: %w - product name cannot be empty", auctionerrors.ErrValidation)
	}
	if patch.BasePrice != nil {
		if err := validatePrice(*patch.BasePrice); err != nil {
			return models.Ad{}, err
		}
	}

	ad, err := s.GetAd(ctx, adID)
	if err != nil {
		return models.Ad{}, err
	}

	if patch.ProductName != nil {
		ad.ProductName = strings.TrimSpace(*patch.ProductName)
	}
	if patch.Image != nil {
		ad.Image = *patch.Image
	}
	if patch.Category != nil {
		ad.Category = *patch.Category
	}
	ad.UpdatedAt = s.clock.Now()

	persist := func(ctx context.Context, currentPrice float64) error {
		if patch.BasePrice != nil {
			ad.BasePrice = *patch.BasePrice
		}
		ad.CurrentPrice = currentPrice
		return s.store.UpdateAd(ctx, ad)
	}

	engine, err := s.rooms.Engine(ctx, ad.RoomID)
	switch {
	case err == nil:
		err = engine.Amend(ctx, patch.BasePrice, persist)
	case errors.Is(err, auctionerrors.ErrRoomNotFound):
		// room already settled and archived; descriptive edits only
		if patch.BasePrice != nil {
			return models.Ad{}, fmt.Errorf("service: %w - auction for ad %s has ended", auctionerrors.ErrAdLocked, adID)
		}
		err = persist(ctx, ad.CurrentPrice)
	}
	if err != nil {
		return models.Ad{}, fmt.Errorf("service: failed to update ad %s: %w", adID, err)
	}

	return s.withLiveState(ctx, ad), nil
}

// PlaceBid submits a bid on the room of an ad
func (s *AuctionService) PlaceBid(ctx context.Context, adID, bidderID string, amount float64) (models.BidReceipt, error) {
	if adID == "" || bidderID == "" {
		return models.BidReceipt{}, fmt.Errorf("service: %w - missing adID or bidderID", auctionerrors.ErrInvalidBid)
	}

	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return models.BidReceipt{}, fmt.Errorf("service: failed to get ad %s: %w", adID, err)
	}

	res, err := s.rooms.SubmitBid(ctx, ad.RoomID, bidderID, amount)
	if err != nil {
		return models.BidReceipt{}, fmt.Errorf("service: failed to place bid on ad %s by %s: %w", adID, bidderID, err)
	}

	return models.BidReceipt{Bid: res.Bid, Deadline: res.Deadline, Extended: res.Extended}, nil
}

// GetBids returns the accepted bids for an ad in acceptance order
func (s *AuctionService) GetBids(ctx context.Context, adID string) ([]models.Bid, error) {
	ad, err := s.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}

	bids := make([]models.Bid, 0)
	if engine, ok := s.rooms.Lookup(ad.RoomID); ok {
		for b := range engine.History() {
			bids = append(bids, b)
		}
		return bids, nil
	}

	state, err := s.store.LoadRoom(ctx, ad.RoomID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load bids for ad %s: %w", adID, err)
	}
	return append(bids, state.Bids...), nil
}

// GetRoom returns the auction room view for an ad
func (s *AuctionService) GetRoom(ctx context.Context, adID string) (models.RoomSnapshot, error) {
	ad, err := s.GetAd(ctx, adID)
	if err != nil {
		return models.RoomSnapshot{}, err
	}

	engine, err := s.rooms.Engine(ctx, ad.RoomID)
	if err == nil {
		return engine.Snapshot(), nil
	}
	if !errors.Is(err, auctionerrors.ErrRoomNotFound) {
		return models.RoomSnapshot{}, fmt.Errorf("service: failed to get room for ad %s: %w", adID, err)
	}

	state, err := s.store.LoadRoom(ctx, ad.RoomID)
	if err != nil {
		return models.RoomSnapshot{}, fmt.Errorf("service: failed to load room for ad %s: %w", adID, err)
	}
	return archivedSnapshot(state), nil
}

// withLiveState refreshes timer and current price from the live room, if any.
// A stored ad keeps its timer until the room settles, so a nonzero timer on an
// ad outside the live set means the room still has to be loaded.
func (s *AuctionService) withLiveState(ctx context.Context, ad models.Ad) models.Ad {
	engine, ok := s.rooms.Lookup(ad.RoomID)
	if !ok && ad.Timer > 0 {
		var err error
		engine, err = s.rooms.Engine(ctx, ad.RoomID)
		if err != nil {
			utils.Warn("Live state unavailable for ad", map[string]any{"ad_id": ad.ID, "room_id": ad.RoomID, "error": err.Error()})
		}
		ok = err == nil
	}
	if !ok {
		ad.Timer = 0
		return ad
	}

	ad.CurrentPrice = engine.CurrentPrice()
	ad.BasePrice = engine.BasePrice()
	ad.Timer = 0
	if engine.Status().AcceptsBids() {
		ad.Timer = models.RemainingSeconds(engine.Deadline(), s.clock.Now())
	}
	return ad
}

func archivedSnapshot(state models.RoomState) models.RoomSnapshot {
	snap := models.RoomSnapshot{
		RoomID:       state.Room.ID,
		AdID:         state.Ad.ID,
		Status:       state.Room.Status,
		Deadline:     state.Room.Deadline,
		BasePrice:    state.Ad.BasePrice,
		CurrentPrice: state.Ad.CurrentPrice,
		BidCount:     len(state.Bids),
		WinnerID:     state.Room.WinnerID,
		FinalPrice:   state.Room.FinalPrice,
	}
	if n := len(state.Bids); n > 0 {
		high := state.Bids[n-1]
		snap.HighBid = &high
	}
	return snap
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("service: %w - base price must be a non-negative number", auctionerrors.ErrValidation)
	}
	return nil
}
