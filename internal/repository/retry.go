package repository

import (
	"context"
	"errors"
	"time"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/metrics"
	"auction-rooms/internal/models"
	"auction-rooms/utils"

	"github.com/cenkalti/backoff/v4"
)

// RetryOptions bounds the retry loop around transient storage failures
type RetryOptions struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RetryingStore wraps an AuctionStore and retries operations that fail with
// ErrStorageUnavailable. Any other error is returned on the first attempt.
type RetryingStore struct {
	next AuctionStore
	opts RetryOptions
}

var _ AuctionStore = (*RetryingStore)(nil)

// NewRetryingStore creates a RetryingStore around next
func NewRetryingStore(next AuctionStore, opts RetryOptions) *RetryingStore {
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 100 * time.Millisecond
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 2 * time.Second
	}
	return &RetryingStore{next: next, opts: opts}
}

func (r *RetryingStore) do(ctx context.Context, operation string, fn func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.opts.InitialInterval
	eb.MaxInterval = r.opts.MaxInterval
	eb.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, r.opts.MaxRetries), ctx)

	op := func() error {
		err := fn()
		if err == nil || errors.Is(err, auctionerrors.ErrStorageUnavailable) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		metrics.StorageRetries.WithLabelValues(operation).Inc()
		utils.Warn("storage operation failed, retrying", map[string]any{
			"operation": operation,
			"wait":      wait.String(),
			"error":     err.Error(),
		})
	}
	return backoff.RetryNotify(op, policy, notify)
}

func (r *RetryingStore) CreateAdAndRoom(ctx context.Context, ad models.Ad, room models.Room) (string, string, error) {
	var adID, roomID string
	err := r.do(ctx, "create_ad_and_room", func() error {
		var err error
		adID, roomID, err = r.next.CreateAdAndRoom(ctx, ad, room)
		return err
	})
	return adID, roomID, err
}

func (r *RetryingStore) ListAds(ctx context.Context) ([]models.Ad, error) {
	var ads []models.Ad
	err := r.do(ctx, "list_ads", func() error {
		var err error
		ads, err = r.next.ListAds(ctx)
		return err
	})
	return ads, err
}

func (r *RetryingStore) GetAd(ctx context.Context, adID string) (models.Ad, error) {
	var ad models.Ad
	err := r.do(ctx, "get_ad", func() error {
		var err error
		ad, err = r.next.GetAd(ctx, adID)
		return err
	})
	return ad, err
}

func (r *RetryingStore) UpdateAd(ctx context.Context, ad models.Ad) error {
	return r.do(ctx, "update_ad", func() error {
		return r.next.UpdateAd(ctx, ad)
	})
}

func (r *RetryingStore) LoadRoom(ctx context.Context, roomID string) (models.RoomState, error) {
	var state models.RoomState
	err := r.do(ctx, "load_room", func() error {
		var err error
		state, err = r.next.LoadRoom(ctx, roomID)
		return err
	})
	return state, err
}

func (r *RetryingStore) ListLiveRooms(ctx context.Context) ([]models.RoomState, error) {
	var states []models.RoomState
	err := r.do(ctx, "list_live_rooms", func() error {
		var err error
		states, err = r.next.ListLiveRooms(ctx)
		return err
	})
	return states, err
}

func (r *RetryingStore) PersistBid(ctx context.Context, bid models.Bid) error {
	return r.do(ctx, "persist_bid", func() error {
		return r.next.PersistBid(ctx, bid)
	})
}

func (r *RetryingStore) PersistSettlement(ctx context.Context, settlement models.Settlement) error {
	return r.do(ctx, "persist_settlement", func() error {
		return r.next.PersistSettlement(ctx, settlement)
	})
}
