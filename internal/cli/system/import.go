package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/importer"
)

type ImportCmd struct {
	File string `arg:"" help:"YAML file with categories and habits to import."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	// Automatic backup before the bulk write.
	ctx.PerformAutomaticBackup()

	result, err := importer.Import(ctx.Tracker, string(data))
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d categor(ies) and %d habit(s)\n", result.Categories, result.Habits)
	return nil
}
