package state

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type sequenceIDProvider struct {
	next int
}

func (g *sequenceIDProvider) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type failingIDProvider struct{}

func (failingIDProvider) NewID() (string, error) {
	return "", errors.New("id generation unavailable")
}

type memoryPersister struct {
	saved     []State
	saveErr   error
	loadState *State
	loadErr   error
}

func (p *memoryPersister) Save(snapshot State) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = append(p.saved, snapshot)
	return nil
}

func (p *memoryPersister) Load() (State, error) {
	if p.loadErr != nil {
		return DefaultState(), p.loadErr
	}
	if p.loadState != nil {
		return *p.loadState, nil
	}
	return DefaultState(), nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestStore(t *testing.T, clock func() time.Time) *Store {
	t.Helper()
	if clock == nil {
		clock = fixedClock(time.Unix(1700000000, 0).UTC())
	}
	store, err := NewStore(StoreConfig{
		Clock:      clock,
		IDProvider: &sequenceIDProvider{},
	})
	if err != nil {
		t.Fatalf("failed to construct store: %v", err)
	}
	return store
}

func dateOffset(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format(dateLayout)
}
