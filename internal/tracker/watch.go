package tracker

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/pubsub"
)

// Watcher is a live query: C carries the initial value and then a new
// value each time an invalidation makes the query produce something
// different. Values coalesce under rapid writes; receivers always see the
// latest state, not every intermediate one.
type Watcher[T any] struct {
	C    <-chan T
	done chan struct{}
	sub  *pubsub.Subscription
}

// Cancel stops the watcher. No further values are delivered after Cancel
// returns, but C stays open.
func (w *Watcher[T]) Cancel() {
	close(w.done)
	w.sub.Cancel()
}

// newWatcher runs query once for the initial value, then re-runs it on
// each invalidation of the topics, emitting only when the result changed.
// Change detection hashes the value, so slices and structs compare by
// content rather than identity.
func newWatcher[T any](broker *pubsub.Broker, topics []string, query func() (T, error)) (*Watcher[T], error) {
	// Subscribe before the initial read: a write that publishes while the
	// snapshot query runs leaves a pending invalidation, so the watcher
	// re-queries instead of handing out a stale value forever.
	sub := broker.Subscribe(topics...)

	initial, err := query()
	if err != nil {
		sub.Cancel()
		return nil, err
	}

	lastHash, hashErr := hashstructure.Hash(initial, hashstructure.FormatV2, nil)

	ch := make(chan T, 1)
	ch <- initial

	w := &Watcher[T]{
		C:    ch,
		done: make(chan struct{}),
		sub:  sub,
	}

	go func() {
		last := lastHash
		lastOK := hashErr == nil
		for {
			select {
			case <-w.done:
				return
			case <-w.sub.C:
			}

			value, err := query()
			if err != nil {
				// A transient store failure degrades to "no new value";
				// the subscription stays alive for the next invalidation.
				logger.Warn("Live query failed", "topics", topics, "error", err)
				continue
			}

			h, err := hashstructure.Hash(value, hashstructure.FormatV2, nil)
			changed := err != nil || !lastOK || h != last
			if err == nil {
				last = h
				lastOK = true
			}
			if !changed {
				continue
			}

			// Latest-value semantics: replace a pending unread value
			// instead of blocking the broker goroutine.
			select {
			case ch <- value:
			case <-w.done:
				return
			default:
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- value:
				case <-w.done:
					return
				}
			}
		}
	}()

	return w, nil
}

// WatchHabits is the live form of Habits.
func (s *Service) WatchHabits() (*Watcher[[]models.Habit], error) {
	return newWatcher(s.broker, []string{pubsub.TopicHabits}, s.Habits)
}

// WatchCategories is the live form of Categories.
func (s *Service) WatchCategories() (*Watcher[[]models.Category], error) {
	return newWatcher(s.broker, []string{pubsub.TopicCategories}, s.Categories)
}

// WatchCompletedToday is the live form of CompletedToday.
func (s *Service) WatchCompletedToday(habitID int64) (*Watcher[bool], error) {
	return newWatcher(s.broker, []string{pubsub.HistoryTopic(habitID)}, func() (bool, error) {
		return s.CompletedToday(habitID)
	})
}

// WatchCompletionCount is the live form of CompletionCount.
func (s *Service) WatchCompletionCount(habitID int64) (*Watcher[int], error) {
	return newWatcher(s.broker, []string{pubsub.HistoryTopic(habitID)}, func() (int, error) {
		return s.CompletionCount(habitID)
	})
}

// WatchHistoryDates is the live form of HistoryDates.
func (s *Service) WatchHistoryDates(habitID int64) (*Watcher[[]int64], error) {
	return newWatcher(s.broker, []string{pubsub.HistoryTopic(habitID)}, func() ([]int64, error) {
		return s.HistoryDates(habitID)
	})
}
