package models

// Theme names persisted in settings.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Supported UI languages.
const (
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// Settings holds the persisted user preferences.
type Settings struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

// ValidTheme reports whether s is a supported theme name.
func ValidTheme(s string) bool {
	return s == ThemeLight || s == ThemeDark
}

// ValidLanguage reports whether s is a supported language code.
func ValidLanguage(s string) bool {
	return s == LanguageEnglish || s == LanguageRussian
}
