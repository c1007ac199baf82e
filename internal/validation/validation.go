package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// ValidateNewHabit checks the fields a habit must carry before it reaches
// storage. Validation failures never leave a partial write behind; the
// caller surfaces them as a transient notice.
func ValidateNewHabit(title, category string, targetDays int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("habit title must not be empty")
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("habit category must not be empty")
	}
	if targetDays <= 0 {
		return fmt.Errorf("target days must be positive, got %d", targetDays)
	}
	return nil
}

// ValidateNewCategory checks a category before insertion.
func ValidateNewCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name must not be empty")
	}
	return nil
}

// ValidateSettings checks user preference values before they are persisted.
func ValidateSettings(s models.Settings) error {
	if !models.ValidTheme(s.Theme) {
		return fmt.Errorf("unknown theme %q (expected %q or %q)", s.Theme, models.ThemeLight, models.ThemeDark)
	}
	if !models.ValidLanguage(s.Language) {
		return fmt.Errorf("unknown language %q (expected %q or %q)", s.Language, models.LanguageEnglish, models.LanguageRussian)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("unknown timezone %q", s.Timezone)
	}
	return nil
}
