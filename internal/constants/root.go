package constants

const (
	AppName           = "habitkit"
	DefaultConfigPath = "~/.config/habitkit/habitkit.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitkit-"
	BackupFileSuffix = ".db"

	// Default settings values
	DefaultTheme    = "light"
	DefaultLanguage = "en"
	DefaultTimezone = "Local"

	// Default target for new habits when none is given (21 days to form a habit)
	DefaultTargetDays = 21
)
