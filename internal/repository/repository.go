package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionStore defines the persistence capability for ads, rooms and bids
type AuctionStore interface {
	CreateAdAndRoom(ctx context.Context, ad models.Ad, room models.Room) (string, string, error)
	ListAds(ctx context.Context) ([]models.Ad, error)
	GetAd(ctx context.Context, adID string) (models.Ad, error)
	UpdateAd(ctx context.Context, ad models.Ad) error
	LoadRoom(ctx context.Context, roomID string) (models.RoomState, error)
	ListLiveRooms(ctx context.Context) ([]models.RoomState, error)
	PersistBid(ctx context.Context, bid models.Bid) error
	PersistSettlement(ctx context.Context, settlement models.Settlement) error
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu    sync.RWMutex
	ads   map[string]models.Ad    // key: adID -> value: ad
	rooms map[string]models.Room  // key: roomID -> value: room
	bids  map[string][]models.Bid // key: roomID -> value: bids in sequence order
	order []string                // adIDs in insertion order
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ads:   make(map[string]models.Ad),
		rooms: make(map[string]models.Room),
		bids:  make(map[string][]models.Bid),
	}
}

// CreateAdAndRoom stores an ad and its room together
func (s *MemoryStore) CreateAdAndRoom(_ context.Context, ad models.Ad, room models.Room) (string, string, error) {
	if ad.ID == "" || room.ID == "" {
		return "", "", fmt.Errorf("create ad and room: %w - missing identifier", auctionerrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ads[ad.ID]; ok {
		return "", "", fmt.Errorf("create ad %s: %w - duplicate id", ad.ID, auctionerrors.ErrValidation)
	}
	if _, ok := s.rooms[room.ID]; ok {
		return "", "", fmt.Errorf("create room %s: %w - duplicate id", room.ID, auctionerrors.ErrValidation)
	}

	s.ads[ad.ID] = ad
	s.rooms[room.ID] = room
	s.order = append(s.order, ad.ID)
	return ad.ID, room.ID, nil
}

// ListAds returns all ads, newest first
func (s *MemoryStore) ListAds(_ context.Context) ([]models.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ads := make([]models.Ad, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		ads = append(ads, s.ads[s.order[i]])
	}
	sort.SliceStable(ads, func(i, j int) bool { return ads[i].CreatedAt.After(ads[j].CreatedAt) })
	return ads, nil
}

// GetAd returns a single ad
func (s *MemoryStore) GetAd(_ context.Context, adID string) (models.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ad, ok := s.ads[adID]
	if !ok {
		return models.Ad{}, fmt.Errorf("get ad %s: %w", adID, auctionerrors.ErrAdNotFound)
	}
	return ad, nil
}

// UpdateAd replaces the descriptive fields of an existing ad
func (s *MemoryStore) UpdateAd(_ context.Context, ad models.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.ads[ad.ID]
	if !ok {
		return fmt.Errorf("update ad %s: %w", ad.ID, auctionerrors.ErrAdNotFound)
	}

	stored.ProductName = ad.ProductName
	stored.Image = ad.Image
	stored.Category = ad.Category
	stored.BasePrice = ad.BasePrice
	stored.CurrentPrice = ad.CurrentPrice
	stored.UpdatedAt = ad.UpdatedAt
	s.ads[ad.ID] = stored
	return nil
}

// LoadRoom returns a room with its ad and bid history
func (s *MemoryStore) LoadRoom(_ context.Context, roomID string) (models.RoomState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadRoomLocked(roomID)
}

func (s *MemoryStore) loadRoomLocked(roomID string) (models.RoomState, error) {
	room, ok := s.rooms[roomID]
	if !ok {
		return models.RoomState{}, fmt.Errorf("load room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
	}
	ad, ok := s.ads[room.AdID]
	if !ok {
		return models.RoomState{}, fmt.Errorf("load room %s: %w", roomID, auctionerrors.ErrAdNotFound)
	}
	return models.RoomState{
		Room: room,
		Ad:   ad,
		Bids: append([]models.Bid(nil), s.bids[roomID]...),
	}, nil
}

// ListLiveRooms returns every room that has not been settled
func (s *MemoryStore) ListLiveRooms(_ context.Context) ([]models.RoomState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]models.RoomState, 0)
	for id, room := range s.rooms {
		if room.Status == models.RoomSettled {
			continue
		}
		state, err := s.loadRoomLocked(id)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Room.Deadline.Before(states[j].Room.Deadline) })
	return states, nil
}

// PersistBid records an accepted bid and moves the ad price and room high bid with it
func (s *MemoryStore) PersistBid(_ context.Context, bid models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[bid.RoomID]
	if !ok {
		return fmt.Errorf("persist bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomNotFound)
	}
	ad, ok := s.ads[room.AdID]
	if !ok {
		return fmt.Errorf("persist bid for room %s: %w", bid.RoomID, auctionerrors.ErrAdNotFound)
	}

	s.bids[bid.RoomID] = append(s.bids[bid.RoomID], bid)

	room.HighBidID = bid.ID
	room.LastSeq = bid.Seq
	if room.Status == models.RoomOpen {
		room.Status = models.RoomActive
	}
	s.rooms[room.ID] = room

	if bid.Amount > ad.CurrentPrice {
		ad.CurrentPrice = bid.Amount
	}
	ad.UpdatedAt = bid.PlacedAt
	s.ads[ad.ID] = ad
	return nil
}

// PersistSettlement marks a room as settled with its winner and final price
func (s *MemoryStore) PersistSettlement(_ context.Context, settlement models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[settlement.RoomID]
	if !ok {
		return fmt.Errorf("persist settlement for room %s: %w", settlement.RoomID, auctionerrors.ErrRoomNotFound)
	}

	settledAt := settlement.SettledAt
	room.Status = models.RoomSettled
	room.WinnerID = settlement.WinnerID
	room.FinalPrice = settlement.FinalPrice
	room.SettledAt = &settledAt
	s.rooms[room.ID] = room

	if ad, ok := s.ads[room.AdID]; ok {
		ad.Timer = 0
		ad.CurrentPrice = settlement.FinalPrice
		ad.UpdatedAt = settledAt
		s.ads[ad.ID] = ad
	}
	return nil
}
