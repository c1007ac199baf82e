package categories

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

type CategoryCmd struct {
	Add     CategoryAddCmd     `cmd:"" help:"Add a new category."`
	List    CategoryListCmd    `cmd:"" help:"List categories in display order."`
	Reorder CategoryReorderCmd `cmd:"" help:"Reorder categories by id list."`
	Delete  CategoryDeleteCmd  `cmd:"" help:"Move a category to the trash (soft delete)."`
	Restore CategoryRestoreCmd `cmd:"" help:"Restore a category from the trash."`
	Purge   CategoryPurgeCmd   `cmd:"" help:"Permanently delete a trashed category."`
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Color string `short:"c" default:"4361EE" help:"Color as a hex RGB value (e.g. 4361EE)."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	color, err := ParseColor(c.Color)
	if err != nil {
		return err
	}

	category, err := ctx.Tracker.AddCategory(c.Name, color)
	if err != nil {
		return err
	}
	fmt.Printf("Added category [%d] %s (%s)\n", category.ID, category.Name, cli.FormatColor(category.Color))
	return nil
}

// ParseColor parses a hex color string like "4361EE" or "#4361EE" into a
// packed RGB integer.
func ParseColor(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q (expected hex RGB like 4361EE)", s)
	}
	return int(v), nil
}

type CategoryListCmd struct {
	Deleted bool `help:"Include trashed categories."`
}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	var categories []models.Category
	var err error
	if c.Deleted {
		categories, err = ctx.Tracker.TrashedCategories()
	} else {
		categories, err = ctx.Tracker.Categories()
	}
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	for _, cat := range categories {
		status := ""
		if cat.IsDeleted {
			status = " [DELETED]"
		}
		fmt.Printf("%2d. [%d] %s %s%s\n", cat.OrderIndex, cat.ID, cat.Name, cli.FormatColor(cat.Color), status)
	}
	return nil
}

type CategoryReorderCmd struct {
	IDs []int64 `arg:"" help:"Category ids in the desired display order."`
}

func (c *CategoryReorderCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Tracker.Categories()
	if err != nil {
		return err
	}

	byID := make(map[int64]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	if len(c.IDs) != len(categories) {
		return fmt.Errorf("expected %d ids (one per active category), got %d", len(categories), len(c.IDs))
	}

	ordered := make([]models.Category, 0, len(c.IDs))
	seen := make(map[int64]bool, len(c.IDs))
	for _, id := range c.IDs {
		cat, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown category id %d", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate category id %d", id)
		}
		seen[id] = true
		ordered = append(ordered, cat)
	}

	if err := ctx.Tracker.ReorderCategories(ordered); err != nil {
		return err
	}
	fmt.Println("Categories reordered.")
	return nil
}

type CategoryDeleteCmd struct {
	ID int64 `arg:"" help:"Category id."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.SoftDeleteCategory(c.ID); err != nil {
		return err
	}
	fmt.Printf("Moved category %d to the trash\n", c.ID)
	return nil
}

type CategoryRestoreCmd struct {
	ID int64 `arg:"" help:"Category id."`
}

func (c *CategoryRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.RestoreCategory(c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored category %d\n", c.ID)
	return nil
}

type CategoryPurgeCmd struct {
	ID    int64 `arg:"" help:"Category id."`
	Force bool  `help:"Purge even if the category is not in the trash."`
}

func (c *CategoryPurgeCmd) Run(ctx *cli.Context) error {
	category, err := ctx.Tracker.GetCategory(c.ID)
	if err != nil {
		return err
	}
	if !category.IsDeleted && !c.Force {
		return fmt.Errorf("category %q is not in the trash; delete it first or use --force", category.Name)
	}

	orphaned, err := ctx.Tracker.PurgeCategory(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Permanently deleted category %q\n", category.Name)
	if orphaned > 0 {
		fmt.Printf("Warning: %d habit(s) still reference %q; they keep the name as plain text\n", orphaned, category.Name)
	}
	return nil
}
