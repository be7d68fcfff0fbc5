// Package mongostore persists ads, rooms and bids in MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	adsCollection   = "ads"
	roomsCollection = "rooms"
	bidsCollection  = "bids"
)

// Store is a MongoDB implementation of repository.AuctionStore
type Store struct {
	ads   *mongo.Collection
	rooms *mongo.Collection
	bids  *mongo.Collection
}

// New creates a Store on db
func New(db *mongo.Database) *Store {
	return &Store{
		ads:   db.Collection(adsCollection),
		rooms: db.Collection(roomsCollection),
		bids:  db.Collection(bidsCollection),
	}
}

// EnsureIndexes creates the indexes the store relies on
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.bids.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return unavailable("ensure bid index", err)
	}
	_, err = s.rooms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "deadline", Value: 1}},
	})
	if err != nil {
		return unavailable("ensure room index", err)
	}
	return nil
}

// CreateAdAndRoom inserts the ad and its room. If the room insert fails the ad is removed again.
// Both inserts tolerate finding their own document already written, so a retried call completes.
func (s *Store) CreateAdAndRoom(ctx context.Context, ad models.Ad, room models.Room) (string, string, error) {
	if _, err := s.ads.InsertOne(ctx, ad); err != nil {
		if err := s.sameAd(ctx, ad, err); err != nil {
			return "", "", err
		}
	}

	if _, err := s.rooms.InsertOne(ctx, room); err != nil {
		err = s.sameRoom(ctx, room, err)
		if err == nil {
			return ad.ID, room.ID, nil
		}
		if _, delErr := s.ads.DeleteOne(ctx, bson.M{"_id": ad.ID}); delErr != nil {
			return "", "", fmt.Errorf("%w (rollback of ad %s failed: %v)", err, ad.ID, delErr)
		}
		return "", "", err
	}
	return ad.ID, room.ID, nil
}

// sameAd accepts a duplicate key on the ad insert when the stored ad is this one
func (s *Store) sameAd(ctx context.Context, ad models.Ad, insertFailure error) error {
	if !mongo.IsDuplicateKeyError(insertFailure) {
		return unavailable("insert ad "+ad.ID, insertFailure)
	}

	var stored models.Ad
	if err := s.ads.FindOne(ctx, bson.M{"_id": ad.ID}).Decode(&stored); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return insertErr("insert ad "+ad.ID, insertFailure)
		}
		return unavailable("check ad "+ad.ID, err)
	}
	if stored.RoomID != ad.RoomID || stored.OwnerID != ad.OwnerID {
		return insertErr("insert ad "+ad.ID, insertFailure)
	}
	return nil
}

// sameRoom accepts a duplicate key on the room insert when the stored room is this one
func (s *Store) sameRoom(ctx context.Context, room models.Room, insertFailure error) error {
	if !mongo.IsDuplicateKeyError(insertFailure) {
		return unavailable("insert room "+room.ID, insertFailure)
	}

	var stored models.Room
	if err := s.rooms.FindOne(ctx, bson.M{"_id": room.ID}).Decode(&stored); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return insertErr("insert room "+room.ID, insertFailure)
		}
		return unavailable("check room "+room.ID, err)
	}
	if stored.AdID != room.AdID {
		return insertErr("insert room "+room.ID, insertFailure)
	}
	return nil
}

// ListAds returns all ads, newest first
func (s *Store) ListAds(ctx context.Context) ([]models.Ad, error) {
	cur, err := s.ads.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, unavailable("list ads", err)
	}

	ads := make([]models.Ad, 0)
	if err := cur.All(ctx, &ads); err != nil {
		return nil, unavailable("decode ads", err)
	}
	return ads, nil
}

// GetAd returns a single ad
func (s *Store) GetAd(ctx context.Context, adID string) (models.Ad, error) {
	var ad models.Ad
	if err := s.ads.FindOne(ctx, bson.M{"_id": adID}).Decode(&ad); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Ad{}, fmt.Errorf("mongostore: get ad %s: %w", adID, auctionerrors.ErrAdNotFound)
		}
		return models.Ad{}, unavailable("get ad "+adID, err)
	}
	return ad, nil
}

// UpdateAd replaces the descriptive fields and prices of an existing ad
func (s *Store) UpdateAd(ctx context.Context, ad models.Ad) error {
	res, err := s.ads.UpdateOne(ctx, bson.M{"_id": ad.ID}, bson.M{"$set": bson.M{
		"product_name":  ad.ProductName,
		"image":         ad.Image,
		"category":      ad.Category,
		"base_price":    ad.BasePrice,
		"current_price": ad.CurrentPrice,
		"updated_at":    ad.UpdatedAt,
	}})
	if err != nil {
		return unavailable("update ad "+ad.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongostore: update ad %s: %w", ad.ID, auctionerrors.ErrAdNotFound)
	}
	return nil
}

// LoadRoom returns a room with its ad and bid history in sequence order
func (s *Store) LoadRoom(ctx context.Context, roomID string) (models.RoomState, error) {
	var room models.Room
	if err := s.rooms.FindOne(ctx, bson.M{"_id": roomID}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RoomState{}, fmt.Errorf("mongostore: load room %s: %w", roomID, auctionerrors.ErrRoomNotFound)
		}
		return models.RoomState{}, unavailable("load room "+roomID, err)
	}
	return s.hydrate(ctx, room)
}

// ListLiveRooms returns every room that has not been settled, earliest deadline first
func (s *Store) ListLiveRooms(ctx context.Context) ([]models.RoomState, error) {
	filter := bson.M{"status": bson.M{"$ne": models.RoomSettled}}
	cur, err := s.rooms.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}}))
	if err != nil {
		return nil, unavailable("list live rooms", err)
	}

	var rooms []models.Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, unavailable("decode rooms", err)
	}

	states := make([]models.RoomState, 0, len(rooms))
	for _, room := range rooms {
		state, err := s.hydrate(ctx, room)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}

func (s *Store) hydrate(ctx context.Context, room models.Room) (models.RoomState, error) {
	var ad models.Ad
	if err := s.ads.FindOne(ctx, bson.M{"_id": room.AdID}).Decode(&ad); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RoomState{}, fmt.Errorf("mongostore: load room %s: %w", room.ID, auctionerrors.ErrAdNotFound)
		}
		return models.RoomState{}, unavailable("load ad "+room.AdID, err)
	}

	// bids past last_seq were written by a bid write that never committed
	filter := bson.M{"room_id": room.ID, "seq": bson.M{"$lte": room.LastSeq}}
	cur, err := s.bids.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return models.RoomState{}, unavailable("load bids for room "+room.ID, err)
	}
	bids := make([]models.Bid, 0)
	if err := cur.All(ctx, &bids); err != nil {
		return models.RoomState{}, unavailable("decode bids for room "+room.ID, err)
	}

	return models.RoomState{Room: room, Ad: ad, Bids: bids}, nil
}

// PersistBid inserts the bid, raises the ad price, then commits the bid by moving the
// room's last_seq and high bid. Every step can be replayed, so a retry after a partial
// write finishes the job instead of failing on the bid already stored.
func (s *Store) PersistBid(ctx context.Context, bid models.Bid) error {
	if err := s.insertBid(ctx, bid); err != nil {
		return err
	}

	_, err := s.ads.UpdateOne(ctx, bson.M{"_id": bid.AdID}, bson.M{
		"$max": bson.M{"current_price": bid.Amount},
		"$set": bson.M{"updated_at": bid.PlacedAt},
	})
	if err != nil {
		return unavailable("update ad price "+bid.AdID, err)
	}

	// the room update is the commit point and must stay last
	res, err := s.rooms.UpdateOne(ctx, bson.M{"_id": bid.RoomID}, bson.M{
		"$set": bson.M{"high_bid_id": bid.ID, "status": models.RoomActive},
		"$max": bson.M{"last_seq": bid.Seq},
	})
	if err != nil {
		return unavailable("update room "+bid.RoomID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongostore: persist bid for room %s: %w", bid.RoomID, auctionerrors.ErrRoomNotFound)
	}
	return nil
}

// insertBid writes bid. When its sequence is taken it either finds this very bid (a replay),
// replaces a bid that was never committed to the room, or fails with ErrValidation.
func (s *Store) insertBid(ctx context.Context, bid models.Bid) error {
	_, err := s.bids.InsertOne(ctx, bid)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return unavailable("insert bid "+bid.ID, err)
	}

	var stored models.Bid
	if findErr := s.bids.FindOne(ctx, bson.M{"room_id": bid.RoomID, "seq": bid.Seq}).Decode(&stored); findErr != nil {
		if errors.Is(findErr, mongo.ErrNoDocuments) {
			return insertErr("insert bid "+bid.ID, err)
		}
		return unavailable("check bid "+bid.ID, findErr)
	}
	if stored.ID == bid.ID {
		if stored.BidderID != bid.BidderID || stored.Amount != bid.Amount {
			return fmt.Errorf("mongostore: insert bid %s: %w - stored bid differs", bid.ID, auctionerrors.ErrValidation)
		}
		return nil
	}

	var room models.Room
	if findErr := s.rooms.FindOne(ctx, bson.M{"_id": bid.RoomID}).Decode(&room); findErr != nil {
		if errors.Is(findErr, mongo.ErrNoDocuments) {
			return fmt.Errorf("mongostore: insert bid %s: %w", bid.ID, auctionerrors.ErrRoomNotFound)
		}
		return unavailable("check room "+bid.RoomID, findErr)
	}
	if stored.Seq <= room.LastSeq {
		return insertErr("insert bid "+bid.ID, err)
	}

	if _, delErr := s.bids.DeleteOne(ctx, bson.M{"_id": stored.ID, "room_id": bid.RoomID, "seq": bid.Seq}); delErr != nil {
		return unavailable("drop uncommitted bid "+stored.ID, delErr)
	}
	if _, err := s.bids.InsertOne(ctx, bid); err != nil {
		return insertErr("insert bid "+bid.ID, err)
	}
	return nil
}

// PersistSettlement marks a room as settled and freezes the ad's final price
func (s *Store) PersistSettlement(ctx context.Context, settlement models.Settlement) error {
	res, err := s.rooms.UpdateOne(ctx, bson.M{"_id": settlement.RoomID}, bson.M{"$set": bson.M{
		"status":      models.RoomSettled,
		"winner_id":   settlement.WinnerID,
		"final_price": settlement.FinalPrice,
		"settled_at":  settlement.SettledAt,
	}})
	if err != nil {
		return unavailable("settle room "+settlement.RoomID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongostore: persist settlement for room %s: %w", settlement.RoomID, auctionerrors.ErrRoomNotFound)
	}

	_, err = s.ads.UpdateOne(ctx, bson.M{"_id": settlement.AdID}, bson.M{"$set": bson.M{
		"timer":         0,
		"current_price": settlement.FinalPrice,
		"updated_at":    settlement.SettledAt,
	}})
	if err != nil {
		return unavailable("settle ad "+settlement.AdID, err)
	}
	return nil
}

// Connect opens a client against uri and verifies it with a ping
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}
	return client, nil
}

func insertErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongostore: %s: %w - duplicate key", op, auctionerrors.ErrValidation)
	}
	return unavailable(op, err)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("mongostore: %s: %w: %w", op, auctionerrors.ErrStorageUnavailable, err)
}
