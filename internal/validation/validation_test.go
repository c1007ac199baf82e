package validation

import (
	"testing"

	"github.com/julianstephens/habitkit/internal/models"
)

func TestValidateNewHabit(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		category   string
		targetDays int
		wantErr    bool
	}{
		{"valid", "Run", "Sport", 21, false},
		{"empty title", "", "Sport", 21, true},
		{"whitespace title", "   ", "Sport", 21, true},
		{"empty category", "Run", "", 21, true},
		{"zero target", "Run", "Sport", 0, true},
		{"negative target", "Run", "Sport", -5, true},
		{"target of one", "Run", "Sport", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewHabit(tt.title, tt.category, tt.targetDays)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNewHabit(%q, %q, %d) error = %v, wantErr %v",
					tt.title, tt.category, tt.targetDays, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNewCategory(t *testing.T) {
	if err := ValidateNewCategory("Health"); err != nil {
		t.Errorf("ValidateNewCategory(Health) returned unexpected error: %v", err)
	}
	if err := ValidateNewCategory(""); err == nil {
		t.Error("ValidateNewCategory(\"\") returned nil error, want error")
	}
	if err := ValidateNewCategory("  "); err == nil {
		t.Error("ValidateNewCategory(whitespace) returned nil error, want error")
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings models.Settings
		wantErr  bool
	}{
		{"valid light en", models.Settings{Theme: models.ThemeLight, Language: models.LanguageEnglish, Timezone: "UTC"}, false},
		{"valid dark ru", models.Settings{Theme: models.ThemeDark, Language: models.LanguageRussian, Timezone: "Europe/Moscow"}, false},
		{"empty timezone ok", models.Settings{Theme: models.ThemeLight, Language: models.LanguageEnglish, Timezone: ""}, false},
		{"bad theme", models.Settings{Theme: "sepia", Language: models.LanguageEnglish, Timezone: "UTC"}, true},
		{"bad language", models.Settings{Theme: models.ThemeLight, Language: "fr", Timezone: "UTC"}, true},
		{"bad timezone", models.Settings{Theme: models.ThemeLight, Language: models.LanguageEnglish, Timezone: "Nowhere/Here"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettings(tt.settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings(%+v) error = %v, wantErr %v", tt.settings, err, tt.wantErr)
			}
		})
	}
}
