package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle state of a Query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time view of a Query. Data keeps the last good
// value while a refetch is running or after a failed refetch.
type Snapshot[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
	Fetching  bool
}

// Fetcher loads the value behind a Query.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Query caches the result of a Fetcher under a key. Concurrent fetches share
// one call. The shared call keeps the values of the context that started it
// but not its cancellation; each caller stops waiting when its own context is
// done. Deadlines come from the fetcher's transport.
type Query[T any] struct {
	key       string
	fetch     Fetcher[T]
	staleTime time.Duration
	now       func() time.Time

	group singleflight.Group

	mu         sync.Mutex
	state      Snapshot[T]
	hasData    bool
	generation uint64
	subs       map[int]func(Snapshot[T])
	nextSub    int
}

// NewQuery creates a query. A zero staleTime makes every Fetch hit the fetcher.
func NewQuery[T any](key string, fetch Fetcher[T], staleTime time.Duration) *Query[T] {
	return &Query[T]{
		key:       key,
		fetch:     fetch,
		staleTime: staleTime,
		now:       time.Now,
		subs:      make(map[int]func(Snapshot[T])),
	}
}

// Key returns the cache key.
func (q *Query[T]) Key() string {
	return q.key
}

// Fetch returns cached data while it is fresh and calls the fetcher otherwise.
func (q *Query[T]) Fetch(ctx context.Context) (T, error) {
	q.mu.Lock()
	if q.hasData && q.now().Sub(q.state.UpdatedAt) < q.staleTime {
		data := q.state.Data
		q.mu.Unlock()
		return data, nil
	}
	q.mu.Unlock()
	return q.Refetch(ctx)
}

// Refetch calls the fetcher regardless of freshness, joining a call that is
// already in flight.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	ch := q.group.DoChan(q.key, func() (any, error) {
		return q.run(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (q *Query[T]) run(ctx context.Context) (T, error) {
	q.mu.Lock()
	gen := q.generation
	if !q.hasData {
		q.state.Status = StatusLoading
	}
	q.state.Fetching = true
	snap := q.state
	q.mu.Unlock()
	q.notify(snap)

	data, err := q.fetch(ctx)

	q.mu.Lock()
	if gen != q.generation {
		// Invalidated while in flight: hand the result to the waiting
		// callers but keep it out of the cache.
		q.mu.Unlock()
		return data, err
	}
	q.state.Fetching = false
	if err != nil {
		q.state.Status = StatusError
		q.state.Err = err
	} else {
		q.state = Snapshot[T]{Status: StatusSuccess, Data: data, UpdatedAt: q.now()}
		q.hasData = true
	}
	snap = q.state
	q.mu.Unlock()
	q.notify(snap)

	return data, err
}

// Invalidate drops cached data so the next Fetch calls the fetcher again.
func (q *Query[T]) Invalidate() {
	q.mu.Lock()
	q.generation++
	q.hasData = false
	q.state = Snapshot[T]{Status: StatusIdle}
	snap := q.state
	q.mu.Unlock()

	q.group.Forget(q.key)
	q.notify(snap)
}

// Snapshot returns the current state.
func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the subscription.
func (q *Query[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn
	q.mu.Unlock()

	return func() {
		q.mu.Lock()
		delete(q.subs, id)
		q.mu.Unlock()
	}
}

func (q *Query[T]) notify(snap Snapshot[T]) {
	q.mu.Lock()
	fns := make([]func(Snapshot[T]), 0, len(q.subs))
	for _, fn := range q.subs {
		fns = append(fns, fn)
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
