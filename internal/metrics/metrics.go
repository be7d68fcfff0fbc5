package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BidsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Total number of accepted bids",
		},
	)

	BidsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Total number of rejected bid submissions",
		},
		[]string{"reason"},
	)

	DeadlineExtensions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_deadline_extensions_total",
			Help: "Total number of anti-sniping deadline extensions",
		},
	)

	LiveRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auction_live_rooms",
			Help: "Rooms currently held by the supervisor",
		},
	)

	RoomsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_rooms_settled_total",
			Help: "Total number of settled rooms",
		},
		[]string{"outcome"},
	)

	RoomLockWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auction_room_lock_wait_seconds",
			Help:    "Time bid submissions spend waiting for their room",
			Buckets: prometheus.DefBuckets,
		},
	)

	StorageRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_storage_retries_total",
			Help: "Total storage operations retried after a transient failure",
		},
		[]string{"operation"},
	)
)
