// Package feed is the in-process change feed. Repositories publish an event
// after every successful write; live views and websocket sessions subscribe
// with a row-level filter.
package feed

import (
	"sync"

	"go.uber.org/zap"
)

type EventType string

const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
	Delete EventType = "DELETE"
)

// Event describes one committed row change. Row carries the full row so
// subscription filters can evaluate their membership predicate completely.
type Event struct {
	Type       EventType
	Collection string
	Row        any
}

const subscriptionBuffer = 256

// Subscription is one registered consumer. Events are delivered on a
// dedicated goroutine in publish order; a consumer that falls more than
// subscriptionBuffer events behind starts dropping (same policy the chat
// hub applies to slow websocket clients).
type Subscription struct {
	id         int64
	collection string
	filter     func(Event) bool
	ch         chan Event
	done       chan struct{}
	closeOnce  sync.Once
}

func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Broker fans committed events out to subscriptions.
type Broker struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]*Subscription
	log    *zap.Logger
}

func NewBroker(log *zap.Logger) *Broker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Broker{subs: make(map[int64]*Subscription), log: log}
}

// Subscribe registers handler for events on collection whose rows pass
// filter. A nil filter accepts every event on the collection. The handler
// runs on the subscription's own goroutine, never on the publisher's.
func (b *Broker) Subscribe(collection string, filter func(Event) bool, handler func(Event)) *Subscription {
	b.mu.Lock()
	b.nextID++
	sub := &Subscription{
		id:         b.nextID,
		collection: collection,
		filter:     filter,
		ch:         make(chan Event, subscriptionBuffer),
		done:       make(chan struct{}),
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	go func() {
		for {
			select {
			case ev := <-sub.ch:
				// Teardown wins over anything still buffered.
				select {
				case <-sub.done:
					return
				default:
				}
				handler(ev)
			case <-sub.done:
				return
			}
		}
	}()

	return sub
}

// Unsubscribe tears the subscription down. Safe to call more than once and
// on every exit path. Buffered events are discarded at teardown; a handler
// already running finishes, nothing new starts.
func (b *Broker) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	delete(b.subs, sub.id)
	b.mu.Unlock()
	sub.close()
}

// Publish fans ev out to matching subscriptions without blocking the writer.
func (b *Broker) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.collection != ev.Collection {
			continue
		}
		if sub.filter != nil && !sub.filter(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			b.log.Warn("feed subscriber too slow, dropping event",
				zap.String("collection", ev.Collection),
				zap.String("type", string(ev.Type)))
		}
	}
}
