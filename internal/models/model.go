package models

import "time"

// DefaultDurationSeconds is applied when an ad is created without a duration
const DefaultDurationSeconds = 300

// RoomStatus is the lifecycle state of an auction room
type RoomStatus string

const (
	RoomOpen    RoomStatus = "open"
	RoomActive  RoomStatus = "active"
	RoomClosing RoomStatus = "closing"
	RoomClosed  RoomStatus = "closed"
	RoomSettled RoomStatus = "settled"
)

// AcceptsBids reports whether a room in this status may still take bids
func (s RoomStatus) AcceptsBids() bool {
	return s == RoomOpen || s == RoomActive
}

// Ad represents an item listed for auction
type Ad struct {
	ID           string    `json:"id" bson:"_id"`
	ProductName  string    `json:"product_name" bson:"product_name"`
	BasePrice    float64   `json:"base_price" bson:"base_price"`
	CurrentPrice float64   `json:"current_price" bson:"current_price"`
	Duration     int       `json:"duration" bson:"duration"`
	Timer        int       `json:"timer" bson:"timer"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	Category     string    `json:"category,omitempty" bson:"category,omitempty"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	RoomID       string    `json:"room_id" bson:"room_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Room is the live auction context bound 1:1 to an Ad
type Room struct {
	ID         string     `json:"id" bson:"_id"`
	AdID       string     `json:"ad_id" bson:"ad_id"`
	Status     RoomStatus `json:"status" bson:"status"`
	Deadline   time.Time  `json:"deadline" bson:"deadline"`
	HighBidID  string     `json:"high_bid_id,omitempty" bson:"high_bid_id,omitempty"`
	LastSeq    uint64     `json:"last_seq" bson:"last_seq"` // sequence of the last committed bid
	WinnerID   string     `json:"winner_id,omitempty" bson:"winner_id,omitempty"`
	FinalPrice float64    `json:"final_price,omitempty" bson:"final_price,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	SettledAt  *time.Time `json:"settled_at,omitempty" bson:"settled_at,omitempty"`
}

// Bid represents an accepted offer against a room
type Bid struct {
	ID       string    `json:"id" bson:"_id"`
	RoomID   string    `json:"room_id" bson:"room_id"`
	AdID     string    `json:"ad_id" bson:"ad_id"`
	BidderID string    `json:"bidder_id" bson:"bidder_id"`
	Amount   float64   `json:"amount" bson:"amount"`
	Seq      uint64    `json:"seq" bson:"seq"`
	PlacedAt time.Time `json:"placed_at" bson:"placed_at"`
}

// RoomState is a room as loaded back from storage
type RoomState struct {
	Room Room  `json:"room"`
	Ad   Ad    `json:"ad"`
	Bids []Bid `json:"bids"`
}

// Settlement records the outcome of a finished auction
type Settlement struct {
	RoomID     string    `json:"room_id"`
	AdID       string    `json:"ad_id"`
	WinnerID   string    `json:"winner_id,omitempty"`
	FinalPrice float64   `json:"final_price"`
	BidCount   int       `json:"bid_count"`
	SettledAt  time.Time `json:"settled_at"`
}

// RoomSnapshot is a point-in-time view of a live room
type RoomSnapshot struct {
	RoomID       string     `json:"room_id"`
	AdID         string     `json:"ad_id"`
	Status       RoomStatus `json:"status"`
	Deadline     time.Time  `json:"deadline"`
	Timer        int        `json:"timer"`
	BasePrice    float64    `json:"base_price"`
	CurrentPrice float64    `json:"current_price"`
	HighBid      *Bid       `json:"high_bid,omitempty"`
	BidCount     int        `json:"bid_count"`
	WinnerID     string     `json:"winner_id,omitempty"`
	FinalPrice   float64    `json:"final_price,omitempty"`
}

// RemainingSeconds returns whole seconds left until deadline, rounded up and never negative
func RemainingSeconds(deadline, now time.Time) int {
	left := deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}

// AdDraft carries the fields a seller supplies when listing an ad
type AdDraft struct {
	ProductName string
	BasePrice   float64
	Duration    *int // nil means DefaultDurationSeconds
	Image       string
	Category    string
}

// AdPatch is a partial ad update. Nil fields are left unchanged.
type AdPatch struct {
	ProductName  *string
	BasePrice    *float64
	Image        *string
	Category     *string
	CurrentPrice *float64 // always rejected, the price only moves through bids
}

// BidReceipt describes an accepted bid to the bidder
type BidReceipt struct {
	Bid      Bid
	Deadline time.Time
	Extended bool
}
