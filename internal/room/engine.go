// Package room implements the per-room auction state machine.
//
// Every bid submission and state transition for a room is serialized through a
// one-slot semaphore owned by the Engine. Status and deadline are kept in atomics
// so the supervisor can scan them without waiting behind an in-progress bid.
package room

import (
	"context"
	"fmt"
	"iter"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/clock"
	"auction-rooms/internal/ledger"
	"auction-rooms/internal/metrics"
	"auction-rooms/internal/models"
	"auction-rooms/utils"
)

const defaultLockWait = 2 * time.Second

// BidRecorder persists an accepted bid before it becomes visible in the ledger
type BidRecorder interface {
	PersistBid(ctx context.Context, bid models.Bid) error
}

// Options tunes engine behaviour
type Options struct {
	// SnipeWindow is the anti-sniping margin. A bid landing within this window of
	// the deadline pushes the deadline to now+SnipeWindow. Zero disables it.
	SnipeWindow time.Duration
	// LockWait bounds how long a submission waits for the room.
	LockWait time.Duration
}

// Result describes an accepted bid
type Result struct {
	Bid      models.Bid
	Deadline time.Time
	Extended bool
}

// Step is the outcome of Advance
type Step int

const (
	// StepNotDue means the deadline has not been reached yet
	StepNotDue Step = iota
	// StepBusy means a submission holds the room; try again shortly
	StepBusy
	// StepDraining means the room is closing and submissions are still in flight
	StepDraining
	// StepSettled means the room reached its terminal state
	StepSettled
)

type status int32

const (
	statusOpen status = iota
	statusActive
	statusClosing
	statusClosed
	statusSettled
)

var statusNames = [...]models.RoomStatus{
	statusOpen:    models.RoomOpen,
	statusActive:  models.RoomActive,
	statusClosing: models.RoomClosing,
	statusClosed:  models.RoomClosed,
	statusSettled: models.RoomSettled,
}

// Engine is the state machine of a single auction room
type Engine struct {
	roomID   string
	adID     string
	clock    clock.Clock
	recorder BidRecorder
	opts     Options

	sem      chan struct{}
	status   atomic.Int32
	deadline atomic.Int64 // unix nanoseconds
	inflight atomic.Int64

	ledger *ledger.BidLedger

	mu         sync.RWMutex // guards basePrice and settlement for readers
	basePrice  float64
	settlement *models.Settlement
}

// New creates an engine for a freshly created room
func New(ad models.Ad, rm models.Room, clk clock.Clock, recorder BidRecorder, opts Options) *Engine {
	if opts.LockWait <= 0 {
		opts.LockWait = defaultLockWait
	}
	e := &Engine{
		roomID:    rm.ID,
		adID:      ad.ID,
		clock:     clk,
		recorder:  recorder,
		opts:      opts,
		sem:       make(chan struct{}, 1),
		ledger:    ledger.New(),
		basePrice: ad.BasePrice,
	}
	e.status.Store(int32(statusOpen))
	e.deadline.Store(rm.Deadline.UnixNano())
	return e
}

// Restore rebuilds an engine from persisted state
func Restore(state models.RoomState, clk clock.Clock, recorder BidRecorder, opts Options) (*Engine, error) {
	if state.Room.Status == models.RoomSettled {
		return nil, fmt.Errorf("room %s: %w - already settled", state.Room.ID, auctionerrors.ErrRoomClosed)
	}

	l, err := ledger.Restore(state.Bids)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", state.Room.ID, err)
	}

	e := New(state.Ad, state.Room, clk, recorder, opts)
	e.ledger = l
	if l.Len() > 0 {
		e.status.Store(int32(statusActive))
	}
	return e, nil
}

// RoomID returns the room identifier
func (e *Engine) RoomID() string { return e.roomID }

// AdID returns the identifier of the ad the room belongs to
func (e *Engine) AdID() string { return e.adID }

// Status returns the current lifecycle status
func (e *Engine) Status() models.RoomStatus {
	return statusNames[e.status.Load()]
}

// Deadline returns the current deadline without taking the room lock
func (e *Engine) Deadline() time.Time {
	return time.Unix(0, e.deadline.Load()).UTC()
}

// BasePrice returns the starting price
func (e *Engine) BasePrice() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.basePrice
}

// CurrentPrice returns the high bid amount, or the base price before the first bid
func (e *Engine) CurrentPrice() float64 {
	if high, ok := e.ledger.HighBid(); ok {
		return high.Amount
	}
	return e.BasePrice()
}

// History yields the accepted bids in acceptance order
func (e *Engine) History() iter.Seq[models.Bid] {
	return e.ledger.History()
}

// Settlement returns the final outcome once the room is settled
func (e *Engine) Settlement() (models.Settlement, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.settlement == nil {
		return models.Settlement{}, false
	}
	return *e.settlement, true
}

// Submit validates and records a bid
func (e *Engine) Submit(ctx context.Context, bidderID string, amount float64) (Result, error) {
	if bidderID == "" {
		return Result{}, fmt.Errorf("room: %w - missing bidder", auctionerrors.ErrInvalidBid)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Result{}, fmt.Errorf("room: %w - amount must be a positive number", auctionerrors.ErrInvalidBid)
	}

	e.inflight.Add(1)
	defer e.inflight.Add(-1)

	if !e.Status().AcceptsBids() {
		return Result{}, fmt.Errorf("room %s: %w", e.roomID, auctionerrors.ErrRoomClosed)
	}

	if err := e.acquire(ctx); err != nil {
		return Result{}, err
	}
	defer e.release()

	current := status(e.status.Load())
	if current != statusOpen && current != statusActive {
		return Result{}, fmt.Errorf("room %s: %w", e.roomID, auctionerrors.ErrRoomClosed)
	}

	now := e.clock.Now()
	deadline := e.Deadline()
	if !now.Before(deadline) {
		return Result{}, fmt.Errorf("room %s: %w - deadline passed", e.roomID, auctionerrors.ErrRoomClosed)
	}

	if base := e.BasePrice(); amount < base {
		return Result{}, fmt.Errorf("room %s: %w - base price is %.2f", e.roomID, auctionerrors.ErrBidTooLow, base)
	}
	if high, ok := e.ledger.HighBid(); ok && amount <= high.Amount {
		return Result{}, fmt.Errorf("room %s: %w - current highest bid is %.2f", e.roomID, auctionerrors.ErrBidTooLow, high.Amount)
	}

	bid := models.Bid{
		ID:       utils.GenerateID(),
		RoomID:   e.roomID,
		AdID:     e.adID,
		BidderID: bidderID,
		Amount:   amount,
		Seq:      e.ledger.NextSeq(),
		PlacedAt: now,
	}

	if e.recorder != nil {
		if err := e.recorder.PersistBid(ctx, bid); err != nil {
			return Result{}, fmt.Errorf("room %s: persist bid: %w", e.roomID, err)
		}
	}

	if _, err := e.ledger.Append(bid); err != nil {
		return Result{}, fmt.Errorf("room %s: %w", e.roomID, err)
	}
	if current == statusOpen {
		e.status.Store(int32(statusActive))
	}

	res := Result{Bid: bid, Deadline: deadline}
	if e.opts.SnipeWindow > 0 && deadline.Sub(now) < e.opts.SnipeWindow {
		if extended := now.Add(e.opts.SnipeWindow); extended.After(deadline) {
			e.deadline.Store(extended.UnixNano())
			res.Deadline = extended
			res.Extended = true
		}
	}
	return res, nil
}

// Amend runs persist under the room lock so an ad edit cannot interleave with a
// bid. A non-nil basePrice reprices the room, which is only allowed while it is
// open with no bids. persist receives the current price the ad must carry.
func (e *Engine) Amend(ctx context.Context, basePrice *float64, persist func(ctx context.Context, currentPrice float64) error) error {
	if err := e.acquire(ctx); err != nil {
		return err
	}
	defer e.release()

	current := e.CurrentPrice()
	if basePrice != nil {
		if status(e.status.Load()) != statusOpen || e.ledger.Len() > 0 {
			return fmt.Errorf("room %s: %w - bidding has started", e.roomID, auctionerrors.ErrAdLocked)
		}
		current = *basePrice
	}

	if persist != nil {
		if err := persist(ctx, current); err != nil {
			return fmt.Errorf("room %s: persist ad: %w", e.roomID, err)
		}
	}

	if basePrice != nil {
		e.mu.Lock()
		e.basePrice = *basePrice
		e.mu.Unlock()
	}
	return nil
}

// Advance drives the deadline side of the state machine as far as it can go at now:
// open/active -> closing -> closed -> settled. It never blocks on the room lock.
func (e *Engine) Advance(now time.Time) Step {
	select {
	case e.sem <- struct{}{}:
	default:
		return StepBusy
	}
	defer e.release()

	switch status(e.status.Load()) {
	case statusOpen, statusActive:
		if now.Before(e.Deadline()) {
			return StepNotDue
		}
		e.status.Store(int32(statusClosing))
		fallthrough
	case statusClosing:
		if e.inflight.Load() > 0 {
			return StepDraining
		}
		e.status.Store(int32(statusClosed))
		fallthrough
	case statusClosed:
		e.finalize(now)
	}
	return StepSettled
}

// finalize records winner and final price; caller holds the room lock
func (e *Engine) finalize(now time.Time) {
	s := models.Settlement{
		RoomID:     e.roomID,
		AdID:       e.adID,
		FinalPrice: e.CurrentPrice(),
		BidCount:   e.ledger.Len(),
		SettledAt:  now,
	}
	if high, ok := e.ledger.HighBid(); ok {
		s.WinnerID = high.BidderID
	}

	e.mu.Lock()
	e.settlement = &s
	e.mu.Unlock()
	e.status.Store(int32(statusSettled))
}

// Snapshot returns a read-only view of the room
func (e *Engine) Snapshot() models.RoomSnapshot {
	st := e.Status()
	deadline := e.Deadline()
	snap := models.RoomSnapshot{
		RoomID:       e.roomID,
		AdID:         e.adID,
		Status:       st,
		Deadline:     deadline,
		BasePrice:    e.BasePrice(),
		CurrentPrice: e.BasePrice(),
		BidCount:     e.ledger.Len(),
	}
	if st.AcceptsBids() {
		snap.Timer = models.RemainingSeconds(deadline, e.clock.Now())
	}
	if high, ok := e.ledger.HighBid(); ok {
		snap.HighBid = &high
		snap.CurrentPrice = high.Amount
	}
	if s, ok := e.Settlement(); ok {
		snap.WinnerID = s.WinnerID
		snap.FinalPrice = s.FinalPrice
	}
	return snap
}

func (e *Engine) acquire(ctx context.Context) error {
	select {
	case e.sem <- struct{}{}:
		return nil
	default:
	}

	start := time.Now()
	defer func() { metrics.RoomLockWait.Observe(time.Since(start).Seconds()) }()

	timer := time.NewTimer(e.opts.LockWait)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("room %s: %w after %s", e.roomID, auctionerrors.ErrTimeout, e.opts.LockWait)
	case <-ctx.Done():
		return fmt.Errorf("room %s: %w: %v", e.roomID, auctionerrors.ErrTimeout, ctx.Err())
	}
}

func (e *Engine) release() {
	<-e.sem
}
