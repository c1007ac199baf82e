package importer

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitkit/internal/pubsub"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
	"github.com/julianstephens/habitkit/internal/tracker"
)

func setupTestService(t *testing.T) *tracker.Service {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	return tracker.NewService(store, pubsub.NewBroker())
}

func TestImport(t *testing.T) {
	svc := setupTestService(t)

	input := `
categories:
  - name: Health
    color: 0x4361EE
  - name: Learning
habits:
  - title: Run
    category: Health
    target_days: 21
    favorite: true
  - title: Read books
    description: 30 minutes before bed
    category: Learning
    target_days: 60
`

	result, err := Import(svc, input)
	if err != nil {
		t.Fatalf("Import() returned unexpected error: %v", err)
	}
	if result.Categories != 2 {
		t.Errorf("Import() created %d categories, want 2", result.Categories)
	}
	if result.Habits != 2 {
		t.Errorf("Import() created %d habits, want 2", result.Habits)
	}

	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("Categories() returned unexpected error: %v", err)
	}
	if categories[0].Name != "Health" || categories[0].Color != 0x4361EE {
		t.Errorf("first category = %+v, want Health with color 0x4361EE", categories[0])
	}
	if categories[1].Color != 0x4361EE {
		t.Errorf("category without color = %#x, want default 0x4361EE", categories[1].Color)
	}

	habits, err := svc.Habits()
	if err != nil {
		t.Fatalf("Habits() returned unexpected error: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("Habits() returned %d habits, want 2", len(habits))
	}

	// Favorite sorts first.
	if habits[0].Title != "Run" || !habits[0].IsFavorite || habits[0].TargetDays != 21 {
		t.Errorf("imported Run = %+v, want favorite with 21 target days", habits[0])
	}
	if habits[1].Description != "30 minutes before bed" {
		t.Errorf("imported description = %q, want the YAML description", habits[1].Description)
	}
}

func TestImportReusesExistingCategories(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.AddCategory("Health", 0x111111); err != nil {
		t.Fatalf("AddCategory() returned unexpected error: %v", err)
	}

	result, err := Import(svc, `
categories:
  - name: Health
habits:
  - title: Run
    category: Health
    target_days: 21
`)
	if err != nil {
		t.Fatalf("Import() returned unexpected error: %v", err)
	}
	if result.Categories != 0 {
		t.Errorf("Import() created %d categories, want 0 (already exists)", result.Categories)
	}

	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("Categories() returned unexpected error: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("Categories() returned %d categories, want 1", len(categories))
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	svc := setupTestService(t)

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := Import(svc, "habits: [unclosed"); err == nil {
			t.Error("Import() with invalid YAML returned nil error, want error")
		}
	})

	t.Run("empty document", func(t *testing.T) {
		if _, err := Import(svc, ""); err == nil {
			t.Error("Import() with empty document returned nil error, want error")
		}
	})

	t.Run("unnamed category", func(t *testing.T) {
		if _, err := Import(svc, "categories:\n  - color: 0x123456\n"); err == nil {
			t.Error("Import() with unnamed category returned nil error, want error")
		}
	})

	t.Run("habit missing target", func(t *testing.T) {
		if _, err := Import(svc, "habits:\n  - title: Run\n    category: Health\n"); err == nil {
			t.Error("Import() with zero target days returned nil error, want error")
		}
	})
}
