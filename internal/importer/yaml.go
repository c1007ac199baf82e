// Package importer loads habits and categories from a YAML file, so an
// existing tracker can be seeded in one command.
package importer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitkit/internal/tracker"
)

// YAMLCategory represents a single category in the YAML input.
type YAMLCategory struct {
	Name  string `yaml:"name"`
	Color int    `yaml:"color,omitempty"`
}

// YAMLHabit represents a single habit in the YAML input.
type YAMLHabit struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category"`
	TargetDays  int    `yaml:"target_days"`
	Favorite    bool   `yaml:"favorite,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Categories []YAMLCategory `yaml:"categories,omitempty"`
	Habits     []YAMLHabit    `yaml:"habits"`
}

// Result reports what an import created.
type Result struct {
	Categories int
	Habits     int
}

// Default color for imported categories that specify none.
const defaultColor = 0x4361EE

// Import parses a YAML document and creates its categories and habits
// through the tracker service. Categories are created first so habits can
// reference them by name; a category that already exists (by name) is
// reused rather than duplicated.
func Import(svc *tracker.Service, yamlStr string) (Result, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return Result{}, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Habits) == 0 && len(input.Categories) == 0 {
		return Result{}, fmt.Errorf("no habits or categories found in YAML")
	}

	existing, err := svc.Categories()
	if err != nil {
		return Result{}, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Name] = true
	}

	var result Result
	for _, yc := range input.Categories {
		if yc.Name == "" {
			return result, fmt.Errorf("category name is required")
		}
		if known[yc.Name] {
			continue
		}
		color := yc.Color
		if color == 0 {
			color = defaultColor
		}
		if _, err := svc.AddCategory(yc.Name, color); err != nil {
			return result, fmt.Errorf("add category %q: %w", yc.Name, err)
		}
		known[yc.Name] = true
		result.Categories++
	}

	for _, yh := range input.Habits {
		habit, err := svc.AddHabit(yh.Title, yh.Category, yh.TargetDays)
		if err != nil {
			return result, fmt.Errorf("add habit %q: %w", yh.Title, err)
		}
		result.Habits++

		if yh.Description != "" {
			if err := svc.UpdateNote(habit.ID, yh.Description); err != nil {
				return result, fmt.Errorf("set note for %q: %w", yh.Title, err)
			}
		}
		if yh.Favorite {
			if err := svc.ToggleFavorite(habit.ID); err != nil {
				return result, fmt.Errorf("set favorite for %q: %w", yh.Title, err)
			}
		}
	}

	return result, nil
}
