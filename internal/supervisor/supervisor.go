// Package supervisor owns the set of live auction rooms. It routes bids to the
// right room engine and drives every room through its deadline to settlement.
package supervisor

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/clock"
	"auction-rooms/internal/events"
	"auction-rooms/internal/metrics"
	"auction-rooms/internal/models"
	"auction-rooms/internal/repository"
	"auction-rooms/internal/room"
	"auction-rooms/utils"

	"golang.org/x/sync/singleflight"
)

// restoreTimeout bounds a lazy restore; it runs detached from the caller that started it
const restoreTimeout = 5 * time.Second

// Options tunes the supervisor and the engines it creates
type Options struct {
	SnipeWindow  time.Duration
	LockWait     time.Duration
	GracePeriod  time.Duration // how long a settled room stays readable before archival
	ScanInterval time.Duration // upper bound on the sleep between deadline scans
	RetryDelay   time.Duration // delay before re-checking a busy room or retrying settlement
}

func (o *Options) withDefaults() {
	if o.GracePeriod < 0 {
		o.GracePeriod = 0
	}
	if o.ScanInterval <= 0 {
		o.ScanInterval = time.Second
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 50 * time.Millisecond
	}
}

// Supervisor routes bids and schedules deadlines for live rooms
type Supervisor struct {
	store     repository.AuctionStore
	publisher events.Publisher
	clock     clock.Clock
	opts      Options

	mu    sync.RWMutex
	rooms map[string]*room.Engine // key: roomID

	qmu   sync.Mutex
	queue dueQueue
	wake  chan struct{}

	restores singleflight.Group
}

// New creates a Supervisor
func New(store repository.AuctionStore, publisher events.Publisher, clk clock.Clock, opts Options) *Supervisor {
	opts.withDefaults()
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Supervisor{
		store:     store,
		publisher: publisher,
		clock:     clk,
		opts:      opts,
		rooms:     make(map[string]*room.Engine),
		wake:      make(chan struct{}, 1),
	}
}

func (s *Supervisor) engineOptions() room.Options {
	return room.Options{SnipeWindow: s.opts.SnipeWindow, LockWait: s.opts.LockWait}
}

// Register adds a freshly created room to the live set
func (s *Supervisor) Register(ad models.Ad, rm models.Room) *room.Engine {
	return s.add(room.New(ad, rm, s.clock, s.store, s.engineOptions()))
}

// add inserts e unless the room is already live, and returns the live engine
func (s *Supervisor) add(e *room.Engine) *room.Engine {
	s.mu.Lock()
	if existing, ok := s.rooms[e.RoomID()]; ok {
		s.mu.Unlock()
		return existing
	}
	s.rooms[e.RoomID()] = e
	s.mu.Unlock()

	metrics.LiveRooms.Inc()
	s.schedule(e.RoomID(), e.Deadline(), kindDeadline)
	return e
}

func (s *Supervisor) schedule(roomID string, due time.Time, kind entryKind) {
	s.qmu.Lock()
	heap.Push(&s.queue, &entry{roomID: roomID, due: due, kind: kind})
	s.qmu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Lookup returns the live engine for roomID without touching storage
func (s *Supervisor) Lookup(roomID string) (*room.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.rooms[roomID]
	return e, ok
}

// Engine returns the live engine for roomID, restoring it from storage if it is
// not in memory. Settled and unknown rooms fail with ErrRoomNotFound.
func (s *Supervisor) Engine(ctx context.Context, roomID string) (*room.Engine, error) {
	if e, ok := s.Lookup(roomID); ok {
		return e, nil
	}

	v, err, _ := s.restores.Do(roomID, func() (any, error) {
		if e, ok := s.Lookup(roomID); ok {
			return e, nil
		}

		// waiters share this load, so one caller giving up must not fail the rest
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
		defer cancel()

		state, err := s.store.LoadRoom(lctx, roomID)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrAdNotFound) {
				return nil, fmt.Errorf("room %s: %w - ad missing", roomID, auctionerrors.ErrRoomNotFound)
			}
			return nil, err
		}
		if state.Room.Status == models.RoomSettled {
			return nil, fmt.Errorf("room %s: %w - archived", roomID, auctionerrors.ErrRoomNotFound)
		}

		e, err := room.Restore(state, s.clock, s.store, s.engineOptions())
		if err != nil {
			return nil, err
		}
		utils.Info("Room restored from storage", map[string]any{"room_id": roomID, "status": e.Status()})
		return s.add(e), nil
	})
	if err != nil {
		return nil, fmt.Errorf("supervisor: %w", err)
	}
	return v.(*room.Engine), nil
}

// SubmitBid routes a bid to its room
func (s *Supervisor) SubmitBid(ctx context.Context, roomID, bidderID string, amount float64) (room.Result, error) {
	e, err := s.Engine(ctx, roomID)
	if err != nil {
		metrics.BidsRejected.WithLabelValues(rejectReason(err)).Inc()
		return room.Result{}, err
	}

	res, err := e.Submit(ctx, bidderID, amount)
	if err != nil {
		metrics.BidsRejected.WithLabelValues(rejectReason(err)).Inc()
		return room.Result{}, fmt.Errorf("supervisor: %w", err)
	}

	metrics.BidsAccepted.Inc()
	s.publish(ctx, events.BidAccepted(res.Bid, res.Deadline))
	if res.Extended {
		metrics.DeadlineExtensions.Inc()
		s.publish(ctx, events.DeadlineExtended(res.Bid, res.Deadline))
		utils.Debug("Deadline extended", map[string]any{"room_id": roomID, "deadline": res.Deadline})
	}
	return res, nil
}

// Restore brings every unsettled room from storage into the live set
func (s *Supervisor) Restore(ctx context.Context) error {
	states, err := s.store.ListLiveRooms(ctx)
	if err != nil {
		return fmt.Errorf("supervisor: restore live rooms: %w", err)
	}

	restored := 0
	for _, state := range states {
		e, err := room.Restore(state, s.clock, s.store, s.engineOptions())
		if err != nil {
			utils.Warn("Skipping room on restore", map[string]any{"room_id": state.Room.ID, "error": err.Error()})
			continue
		}
		s.add(e)
		restored++
	}

	utils.Info("Live rooms restored", map[string]any{"count": restored})
	return nil
}

// ProcessDue handles every scheduled entry that is due at the current clock
// time and returns how many rooms were settled.
func (s *Supervisor) ProcessDue(ctx context.Context) int {
	now := s.clock.Now()
	settled := 0
	for {
		s.qmu.Lock()
		ent, ok := s.queue.popDue(now)
		s.qmu.Unlock()
		if !ok {
			return settled
		}

		switch ent.kind {
		case kindArchive:
			s.archive(ent.roomID)
		case kindDeadline:
			if s.advance(ctx, ent.roomID, now) {
				settled++
			}
		}
	}
}

func (s *Supervisor) advance(ctx context.Context, roomID string, now time.Time) bool {
	e, ok := s.Lookup(roomID)
	if !ok {
		return false
	}

	switch e.Advance(now) {
	case room.StepNotDue:
		// deadline was extended after this entry was queued
		s.schedule(roomID, e.Deadline(), kindDeadline)
	case room.StepBusy, room.StepDraining:
		s.schedule(roomID, now.Add(s.opts.RetryDelay), kindDeadline)
	case room.StepSettled:
		return s.settle(ctx, e, now)
	}
	return false
}

func (s *Supervisor) settle(ctx context.Context, e *room.Engine, now time.Time) bool {
	settlement, _ := e.Settlement()

	if err := s.store.PersistSettlement(ctx, settlement); err != nil {
		utils.Error("Failed to persist settlement", map[string]any{
			"room_id": settlement.RoomID,
			"error":   err.Error(),
		})
		s.schedule(settlement.RoomID, now.Add(s.opts.RetryDelay), kindDeadline)
		return false
	}

	outcome := "sold"
	if settlement.WinnerID == "" {
		outcome = "unsold"
	}
	metrics.RoomsSettled.WithLabelValues(outcome).Inc()
	s.publish(ctx, events.RoomSettled(settlement))

	utils.Info("Room settled", map[string]any{
		"room_id":     settlement.RoomID,
		"ad_id":       settlement.AdID,
		"winner_id":   settlement.WinnerID,
		"final_price": settlement.FinalPrice,
		"bid_count":   settlement.BidCount,
	})

	s.schedule(settlement.RoomID, now.Add(s.opts.GracePeriod), kindArchive)
	return true
}

func (s *Supervisor) archive(roomID string) {
	s.mu.Lock()
	_, ok := s.rooms[roomID]
	delete(s.rooms, roomID)
	s.mu.Unlock()

	if ok {
		metrics.LiveRooms.Dec()
		utils.Debug("Room archived", map[string]any{"room_id": roomID})
	}
}

// Run processes due entries until ctx is cancelled. It sleeps until the earliest
// scheduled entry, at most ScanInterval, and wakes early when a room is added.
func (s *Supervisor) Run(ctx context.Context) error {
	timer := time.NewTimer(s.opts.ScanInterval)
	defer timer.Stop()

	for {
		s.ProcessDue(ctx)

		wait := s.opts.ScanInterval
		s.qmu.Lock()
		next, ok := s.queue.next()
		s.qmu.Unlock()
		if ok {
			if d := next.Sub(s.clock.Now()); d < wait {
				wait = max(d, 0)
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		case <-s.wake:
		}
	}
}

func (s *Supervisor) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		utils.Warn("Failed to publish room event", map[string]any{
			"event":   evt.Event,
			"room_id": evt.RoomID,
			"error":   err.Error(),
		})
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return "bid_too_low"
	case errors.Is(err, auctionerrors.ErrRoomClosed):
		return "room_closed"
	case errors.Is(err, auctionerrors.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return "invalid_bid"
	case errors.Is(err, auctionerrors.ErrTimeout):
		return "timeout"
	case errors.Is(err, auctionerrors.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "other"
	}
}
