package tracking

import (
	"errors"
	"sync"
	"time"

	"bus-buddy/models/buslocation"
	"bus-buddy/types"

	"gorm.io/gorm"
)

// Store reads the latest reported bus position for a route.
type Store interface {
	LatestLocation(route string) (*buslocation.BusLocation, error)
}

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) LatestLocation(route string) (*buslocation.BusLocation, error) {
	var loc buslocation.BusLocation
	err := s.DB.First(&loc, "route = ?", route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, types.NewStorageError("read bus location", err)
	}
	return &loc, nil
}

// Handler receives location updates.
type Handler func(buslocation.BusLocation)

// Feed polls the store for a route's position and fans updates out to
// subscribers. Delivery is single-threaded: handlers run sequentially on the
// poll goroutine, so at most one invocation per subscriber is ever in flight.
type Feed struct {
	store    Store
	route    string
	interval time.Duration

	mu       sync.Mutex
	handlers map[int]Handler
	nextID   int
	lastSeen time.Time
	stop     chan struct{}
	stopped  bool
}

func NewFeed(store Store, route string, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Feed{
		store:    store,
		route:    route,
		interval: interval,
		handlers: make(map[int]Handler),
		stop:     make(chan struct{}),
	}
}

// Subscribe registers a handler and returns its unsubscribe function.
// Unsubscribing is idempotent and must be called on component teardown.
func (f *Feed) Subscribe(h Handler) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.handlers[id] = h
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.handlers, id)
			f.mu.Unlock()
		})
	}
}

// Start launches the poll loop. Safe to call once.
func (f *Feed) Start() {
	go f.loop()
}

// Stop terminates the poll loop; no handler runs after Stop returns.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stopped {
		f.stopped = true
		close(f.stop)
	}
}

func (f *Feed) loop() {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stop:
			return
		case <-ticker.C:
			f.poll()
		}
	}
}

func (f *Feed) poll() {
	loc, err := f.store.LatestLocation(f.route)
	if err != nil || loc == nil {
		return
	}

	f.mu.Lock()
	if !loc.UpdatedAt.After(f.lastSeen) {
		f.mu.Unlock()
		return
	}
	f.lastSeen = loc.UpdatedAt
	handlers := make([]Handler, 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(*loc)
	}
}
