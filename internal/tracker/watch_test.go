package tracker

import (
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/pubsub"
)

func receiveHabits(t *testing.T, w *Watcher[[]models.Habit]) []models.Habit {
	t.Helper()

	select {
	case habits := <-w.C:
		return habits
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher value")
		return nil
	}
}

func TestWatchHabitsInitialValue(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.AddHabit("Run", "Sport", 21); err != nil {
		t.Fatalf("AddHabit() returned unexpected error: %v", err)
	}

	w, err := svc.WatchHabits()
	if err != nil {
		t.Fatalf("WatchHabits() returned unexpected error: %v", err)
	}
	defer w.Cancel()

	habits := receiveHabits(t, w)
	if len(habits) != 1 || habits[0].Title != "Run" {
		t.Errorf("initial watcher value = %+v, want one habit named Run", habits)
	}
}

func TestWatchHabitsEmitsOnChange(t *testing.T) {
	svc := setupTestService(t)

	w, err := svc.WatchHabits()
	if err != nil {
		t.Fatalf("WatchHabits() returned unexpected error: %v", err)
	}
	defer w.Cancel()

	if got := receiveHabits(t, w); len(got) != 0 {
		t.Fatalf("initial watcher value has %d habits, want 0", len(got))
	}

	if _, err := svc.AddHabit("Run", "Sport", 21); err != nil {
		t.Fatalf("AddHabit() returned unexpected error: %v", err)
	}

	habits := receiveHabits(t, w)
	if len(habits) != 1 || habits[0].Title != "Run" {
		t.Errorf("watcher value after insert = %+v, want one habit named Run", habits)
	}
}

func TestWatchHabitsSkipsNoopInvalidations(t *testing.T) {
	svc := setupTestService(t)

	habit, err := svc.AddHabit("Run", "Sport", 21)
	if err != nil {
		t.Fatalf("AddHabit() returned unexpected error: %v", err)
	}

	w, err := svc.WatchHabits()
	if err != nil {
		t.Fatalf("WatchHabits() returned unexpected error: %v", err)
	}
	defer w.Cancel()
	receiveHabits(t, w)

	// Publishing without changing the result must not emit a new value.
	svc.Broker().Publish("habits")

	select {
	case habits := <-w.C:
		t.Errorf("watcher emitted %+v for a no-op invalidation, want no value", habits)
	case <-time.After(200 * time.Millisecond):
	}

	// A real change still comes through afterwards.
	if err := svc.ToggleFavorite(habit.ID); err != nil {
		t.Fatalf("ToggleFavorite() returned unexpected error: %v", err)
	}
	habits := receiveHabits(t, w)
	if len(habits) != 1 || !habits[0].IsFavorite {
		t.Errorf("watcher value after favorite = %+v, want favorited habit", habits)
	}
}

func TestWatchCompletionCount(t *testing.T) {
	svc := setupTestService(t)

	habit, err := svc.AddHabit("Run", "Sport", 21)
	if err != nil {
		t.Fatalf("AddHabit() returned unexpected error: %v", err)
	}

	w, err := svc.WatchCompletionCount(habit.ID)
	if err != nil {
		t.Fatalf("WatchCompletionCount() returned unexpected error: %v", err)
	}
	defer w.Cancel()

	select {
	case count := <-w.C:
		if count != 0 {
			t.Fatalf("initial count = %d, want 0", count)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial count")
	}

	if err := svc.SetTodayStatus(habit.ID, true); err != nil {
		t.Fatalf("SetTodayStatus() returned unexpected error: %v", err)
	}

	select {
	case count := <-w.C:
		if count != 1 {
			t.Errorf("count after mark = %d, want 1", count)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for updated count")
	}
}

func TestWatcherCancelStopsDelivery(t *testing.T) {
	svc := setupTestService(t)

	w, err := svc.WatchHabits()
	if err != nil {
		t.Fatalf("WatchHabits() returned unexpected error: %v", err)
	}
	receiveHabits(t, w)
	w.Cancel()

	if _, err := svc.AddHabit("Run", "Sport", 21); err != nil {
		t.Fatalf("AddHabit() returned unexpected error: %v", err)
	}

	select {
	case habits := <-w.C:
		t.Errorf("cancelled watcher emitted %+v, want no value", habits)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherSeesWriteDuringInitialRead(t *testing.T) {
	broker := pubsub.NewBroker()

	// The first query simulates a snapshot read racing a write: the write
	// lands (and publishes) while the stale snapshot is still being
	// produced. The watcher must re-query and emit the new value.
	value := 0
	first := true
	w, err := newWatcher(broker, []string{pubsub.TopicHabits}, func() (int, error) {
		if first {
			first = false
			value = 1
			broker.Publish(pubsub.TopicHabits)
			return 0, nil
		}
		return value, nil
	})
	if err != nil {
		t.Fatalf("newWatcher() returned unexpected error: %v", err)
	}
	defer w.Cancel()

	select {
	case got := <-w.C:
		if got != 0 {
			t.Fatalf("initial value = %d, want the stale snapshot 0", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial value")
	}

	select {
	case got := <-w.C:
		if got != 1 {
			t.Errorf("re-emitted value = %d, want 1", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the value written during the initial read")
	}
}
