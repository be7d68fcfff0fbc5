// Package events fans out room activity to other processes over Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auction-rooms/internal/models"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=events.go -destination=mock_events.go -package=events

const (
	EventBidAccepted      = "bid_accepted"
	EventDeadlineExtended = "deadline_extended"
	EventRoomSettled      = "room_settled"
)

// Event is the payload published on a room channel
type Event struct {
	Event      string     `json:"event"`
	RoomID     string     `json:"room_id"`
	AdID       string     `json:"ad_id"`
	BidID      string     `json:"bid_id,omitempty"`
	BidderID   string     `json:"bidder_id,omitempty"`
	Amount     float64    `json:"amount,omitempty"`
	Seq        uint64     `json:"seq,omitempty"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	WinnerID   string     `json:"winner_id,omitempty"`
	FinalPrice float64    `json:"final_price,omitempty"`
	At         time.Time  `json:"at"`
}

// Publisher delivers room events to subscribers
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Channel returns the pub/sub channel for a room
func Channel(roomID string) string {
	return "room:" + roomID + ":events"
}

// BidAccepted builds the event for an accepted bid
func BidAccepted(bid models.Bid, deadline time.Time) Event {
	return Event{
		Event:    EventBidAccepted,
		RoomID:   bid.RoomID,
		AdID:     bid.AdID,
		BidID:    bid.ID,
		BidderID: bid.BidderID,
		Amount:   bid.Amount,
		Seq:      bid.Seq,
		Deadline: &deadline,
		At:       bid.PlacedAt,
	}
}

// DeadlineExtended builds the event for an anti-sniping extension
func DeadlineExtended(bid models.Bid, deadline time.Time) Event {
	return Event{
		Event:    EventDeadlineExtended,
		RoomID:   bid.RoomID,
		AdID:     bid.AdID,
		BidID:    bid.ID,
		Deadline: &deadline,
		At:       bid.PlacedAt,
	}
}

// RoomSettled builds the event for a finished auction
func RoomSettled(s models.Settlement) Event {
	return Event{
		Event:      EventRoomSettled,
		RoomID:     s.RoomID,
		AdID:       s.AdID,
		WinnerID:   s.WinnerID,
		FinalPrice: s.FinalPrice,
		At:         s.SettledAt,
	}
}

// RedisPublisher publishes events with PUBLISH on the room channel
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher creates a RedisPublisher
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: encode %s: %w", evt.Event, err)
	}
	if err := p.rdb.Publish(ctx, Channel(evt.RoomID), string(payload)).Err(); err != nil {
		return fmt.Errorf("events: publish %s for room %s: %w", evt.Event, evt.RoomID, err)
	}
	return nil
}

// NopPublisher drops every event. Used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
