package cli

import (
	"fmt"
)

// TrashCmd lists soft-deleted habits and categories. Restore and purge
// live under the habit and category subcommands; purge is only meant for
// entries shown here.
type TrashCmd struct{}

func (c *TrashCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.TrashedHabits()
	if err != nil {
		return err
	}
	categories, err := ctx.Tracker.TrashedCategories()
	if err != nil {
		return err
	}

	if len(habits) == 0 && len(categories) == 0 {
		fmt.Println("Trash is empty.")
		return nil
	}

	if len(habits) > 0 {
		fmt.Println("Trashed habits:")
		for _, h := range habits {
			fmt.Printf("  [%d] %s (%s)\n", h.ID, h.Title, h.Category)
		}
	}
	if len(categories) > 0 {
		fmt.Println("Trashed categories:")
		for _, cat := range categories {
			fmt.Printf("  [%d] %s %s\n", cat.ID, cat.Name, FormatColor(cat.Color))
		}
	}

	fmt.Println()
	fmt.Println("Use 'habit restore/purge' or 'category restore/purge' with an id.")
	return nil
}
