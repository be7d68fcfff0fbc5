// Package ledger keeps the append-only record of accepted bids for one room.
package ledger

import (
	"fmt"
	"iter"
	"sync"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/internal/models"
)

// BidLedger is an append-only, sequence-ordered list of accepted bids.
// Append is the only way the high bid changes.
type BidLedger struct {
	mu   sync.RWMutex
	bids []models.Bid
}

// New creates an empty ledger
func New() *BidLedger {
	return &BidLedger{}
}

// Restore rebuilds a ledger from stored history. Bids must be in sequence order
// starting at 1 with strictly increasing amounts.
func Restore(history []models.Bid) (*BidLedger, error) {
	l := New()
	for _, b := range history {
		if _, err := l.Append(b); err != nil {
			return nil, fmt.Errorf("ledger: restore bid %s: %w", b.ID, err)
		}
	}
	return l, nil
}

// Append records bid as the new high bid and returns its sequence number.
// A bid carrying a zero Seq is assigned the next one; a non-zero Seq must match it.
func (l *BidLedger) Append(bid models.Bid) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := uint64(len(l.bids)) + 1
	if bid.Seq != 0 && bid.Seq != next {
		return 0, fmt.Errorf("ledger: %w - sequence %d out of order, expected %d", auctionerrors.ErrInvalidBid, bid.Seq, next)
	}
	if n := len(l.bids); n > 0 && bid.Amount <= l.bids[n-1].Amount {
		return 0, fmt.Errorf("ledger: %w - current high bid is %.2f", auctionerrors.ErrBidTooLow, l.bids[n-1].Amount)
	}

	bid.Seq = next
	l.bids = append(l.bids, bid)
	return next, nil
}

// HighBid returns the current leading bid, if any
func (l *BidLedger) HighBid() (models.Bid, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.bids) == 0 {
		return models.Bid{}, false
	}
	return l.bids[len(l.bids)-1], true
}

// NextSeq returns the sequence number the next appended bid will get
func (l *BidLedger) NextSeq() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.bids)) + 1
}

// Len returns the number of accepted bids
func (l *BidLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bids)
}

// History yields the bids recorded at the time of the call, in sequence order.
// Each call to the returned sequence starts from the first bid again.
func (l *BidLedger) History() iter.Seq[models.Bid] {
	l.mu.RLock()
	snapshot := l.bids[:len(l.bids):len(l.bids)]
	l.mu.RUnlock()

	return func(yield func(models.Bid) bool) {
		for _, b := range snapshot {
			if !yield(b) {
				return
			}
		}
	}
}
