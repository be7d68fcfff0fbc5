package supervisor

import (
	"container/heap"
	"time"
)

type entryKind int

const (
	kindDeadline entryKind = iota
	kindArchive
)

// entry is a scheduled check on a room
type entry struct {
	roomID string
	due    time.Time
	kind   entryKind
}

// dueQueue is a min-heap of entries ordered by due time
type dueQueue []*entry

var _ heap.Interface = (*dueQueue)(nil)

func (q dueQueue) Len() int { return len(q) }

func (q dueQueue) Less(i, j int) bool { return q[i].due.Before(q[j].due) }

func (q dueQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *dueQueue) Push(x any) { *q = append(*q, x.(*entry)) }

func (q *dueQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// popDue removes and returns the earliest entry if it is due at now
func (q *dueQueue) popDue(now time.Time) (*entry, bool) {
	if q.Len() == 0 || (*q)[0].due.After(now) {
		return nil, false
	}
	return heap.Pop(q).(*entry), true
}

// next returns the due time of the earliest entry
func (q dueQueue) next() (time.Time, bool) {
	if len(q) == 0 {
		return time.Time{}, false
	}
	return q[0].due, true
}
