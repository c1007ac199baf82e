// Package pubsub implements the invalidation layer behind live queries.
// Mutations publish an event for each topic they touch; subscribers hold a
// signal channel and re-run their query when it fires. Signals coalesce:
// rapid writes may collapse into one wakeup, so subscribers observe the
// net effect rather than every intermediate state.
package pubsub

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Topics for the table-level invalidation streams. History writes publish
// both the per-habit topic from HistoryTopic and the aggregate TopicHistory,
// so subscribers can watch one habit or the whole table.
const (
	TopicHabits     = "habits"
	TopicCategories = "categories"
	TopicHistory    = "history"
)

// HistoryTopic returns the invalidation topic for one habit's history rows.
func HistoryTopic(habitID int64) string {
	return "history/" + strconv.FormatInt(habitID, 10)
}

// Subscription is a registered interest in one or more topics. C fires
// (with coalescing) whenever any subscribed topic is published.
type Subscription struct {
	id     uuid.UUID
	topics []string
	broker *Broker

	// C carries wakeup signals. Buffered with size 1 so publishers never
	// block; a pending signal absorbs further publishes.
	C chan struct{}
}

// Cancel removes the subscription from the broker. After Cancel returns
// no further signals are delivered, but C is left open so a concurrent
// receiver does not mistake cancellation for a wakeup.
func (s *Subscription) Cancel() {
	s.broker.unsubscribe(s)
}

// Broker fans invalidation events out to subscriptions.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[uuid.UUID]*Subscription
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[uuid.UUID]*Subscription),
	}
}

// Subscribe registers interest in the given topics.
func (b *Broker) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		id:     uuid.New(),
		topics: topics,
		broker: b,
		C:      make(chan struct{}, 1),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[uuid.UUID]*Subscription)
		}
		b.subs[topic][sub.id] = sub
	}
	return sub
}

func (b *Broker) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range sub.topics {
		delete(b.subs[topic], sub.id)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}
}

// Publish signals every subscription registered for any of the topics.
// Publishing never blocks; a subscriber that already has a pending signal
// is left as-is.
func (b *Broker) Publish(topics ...string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, topic := range topics {
		for _, sub := range b.subs[topic] {
			select {
			case sub.C <- struct{}{}:
			default:
			}
		}
	}
}

// SubscriberCount reports how many subscriptions a topic currently has.
// Used by diagnostics.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
