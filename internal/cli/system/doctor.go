package system

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/migration"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
	"github.com/julianstephens/habitkit/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Duplicate history rows (only if DB is reachable)
	if dbReachable {
		if err := checkHistoryDuplicates(ctx); err != nil {
			fmt.Printf("❌ History duplicates: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ History duplicates: OK\n")
		}
	} else {
		fmt.Printf("⊘ History duplicates: SKIPPED (database not reachable)\n")
	}

	// Check 4: Orphaned category references (warning only)
	if dbReachable {
		if err := checkOrphanedCategories(ctx); err != nil {
			fmt.Printf("⚠ Category references: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Category references: OK\n")
		}
	} else {
		fmt.Printf("⊘ Category references: SKIPPED (database not reachable)\n")
	}

	// Check 5: Category display order contiguous (only if DB is reachable)
	if dbReachable {
		if err := checkCategoryOrder(ctx); err != nil {
			fmt.Printf("❌ Category order: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Category order: OK\n")
		}
	} else {
		fmt.Printf("⊘ Category order: SKIPPED (database not reachable)\n")
	}

	// Check 6: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 7: Other running instances (warning only)
	if err := checkOtherInstances(); err != nil {
		fmt.Printf("⚠ Other instances: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Other instances: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := store.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := store.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("schema version %d is behind latest %d; run 'habitkit migrate'", currentVersion, latestVersion)
	}
	return runner.ValidateVersion()
}

// checkHistoryDuplicates reports (habit_id, date_completed) pairs with
// more than one row. The UNIQUE constraint should make this impossible;
// a hit means the database predates the constraint or was edited by hand.
func checkHistoryDuplicates(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := store.GetDB()

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT habit_id, date_completed, COUNT(*) AS n
			FROM habit_history
			GROUP BY habit_id, date_completed
			HAVING n > 1
		)`).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("found %d duplicated (habit, day) completion pairs", count)
	}
	return nil
}

func checkOrphanedCategories(ctx *cli.Context) error {
	habits, err := ctx.Store.ListAllHabits(true)
	if err != nil {
		return err
	}
	categories, err := ctx.Store.ListCategories(true)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Name] = true
	}

	orphaned := 0
	for _, h := range habits {
		if !known[h.Category] {
			orphaned++
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("%d habit(s) reference a category that no longer exists", orphaned)
	}
	return nil
}

func checkCategoryOrder(ctx *cli.Context) error {
	categories, err := ctx.Store.ListCategories(false)
	if err != nil {
		return err
	}
	for i, c := range categories {
		if c.OrderIndex != i {
			return fmt.Errorf("category %q has order_index %d, expected %d; reorder to fix", c.Name, c.OrderIndex, i)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; run 'habitkit backup create'")
	}
	return nil
}

// checkOtherInstances warns when another habitkit process is running,
// which can hold the SQLite file locked.
func checkOtherInstances() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	others := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			others++
		}
	}
	if others > 0 {
		return fmt.Errorf("%d other habitkit process(es) running; concurrent writes may contend for the database lock", others)
	}
	return nil
}
