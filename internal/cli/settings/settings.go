package settings

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme    *string `help:"UI theme: light or dark."`
	Language *string `help:"UI language: en or ru."`
	Timezone *string `help:"IANA timezone name used for day boundaries."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Theme:    %s\n", settings.Theme)
		fmt.Printf("  Language: %s\n", settings.Language)
		fmt.Printf("  Timezone: %s\n", settings.Timezone)
		return nil
	}

	updated := false
	if c.Theme != nil {
		settings.Theme = *c.Theme
		updated = true
	}
	if c.Language != nil {
		settings.Language = *c.Language
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if updated {
		if err := ctx.Tracker.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
