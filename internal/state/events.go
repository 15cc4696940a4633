package state

import (
	"context"
	"sync"
	"time"
)

// ChangeScope names the slice of state a mutation touched.
type ChangeScope string

const (
	ScopeTodos         ChangeScope = "todos"
	ScopeNotes         ChangeScope = "notes"
	ScopeHabits        ChangeScope = "habits"
	ScopeDrawings      ChangeScope = "drawingPads"
	ScopeFiles         ChangeScope = "files"
	ScopeNotifications ChangeScope = "notifications"
	ScopeView          ChangeScope = "currentView"
	ScopeSidebar       ChangeScope = "sidebar"
	ScopeUser          ChangeScope = "user"
)

// ChangeEvent is published to subscribers after every applied mutation.
type ChangeEvent struct {
	Scope ChangeScope
	At    time.Time
}

type changeDispatcher struct {
	mu          sync.RWMutex
	subscribers map[int64]chan ChangeEvent
	nextID      int64
	bufferSize  int
}

func newChangeDispatcher() *changeDispatcher {
	return &changeDispatcher{
		subscribers: make(map[int64]chan ChangeEvent),
		bufferSize:  16,
	}
}

func (d *changeDispatcher) subscribe(ctx context.Context) (<-chan ChangeEvent, func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	stream := make(chan ChangeEvent, d.bufferSize)
	d.subscribers[id] = stream
	d.mu.Unlock()

	cleanup := func() {
		d.mu.Lock()
		delete(d.subscribers, id)
		d.mu.Unlock()
	}
	go func() {
		<-ctx.Done()
		cleanup()
	}()
	return stream, cleanup
}

// publish delivers the event to every subscriber without blocking; a
// subscriber with a full buffer misses the event and catches up from the
// next snapshot read.
func (d *changeDispatcher) publish(event ChangeEvent) {
	d.mu.RLock()
	streams := make([]chan ChangeEvent, 0, len(d.subscribers))
	for _, stream := range d.subscribers {
		streams = append(streams, stream)
	}
	d.mu.RUnlock()
	for _, stream := range streams {
		select {
		case stream <- event:
		default:
		}
	}
}
