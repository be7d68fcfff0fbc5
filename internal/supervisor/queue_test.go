package supervisor

import (
	"container/heap"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDueQueue_PopsInDueOrder(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q := &dueQueue{}

	heap.Push(q, &entry{roomID: "c", due: base.Add(3 * time.Second)})
	heap.Push(q, &entry{roomID: "a", due: base.Add(1 * time.Second)})
	heap.Push(q, &entry{roomID: "d", due: base.Add(10 * time.Second), kind: kindArchive})
	heap.Push(q, &entry{roomID: "b", due: base.Add(2 * time.Second)})

	next, ok := q.next()
	require.True(t, ok)
	require.Equal(t, base.Add(time.Second), next)

	var got []string
	for {
		e, ok := q.popDue(base.Add(5 * time.Second))
		if !ok {
			break
		}
		got = append(got, e.roomID)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Equal(t, 1, q.Len())

	e, ok := q.popDue(base.Add(10 * time.Second))
	require.True(t, ok)
	require.Equal(t, kindArchive, e.kind)

	_, ok = q.next()
	require.False(t, ok)
}
