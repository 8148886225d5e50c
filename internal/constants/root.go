package constants

import "time"

// SessionState represents the current state of the focus timer
type SessionState int

const (
	AppName            = "myroutine"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// SchemaVersion is written into every exported snapshot
	SchemaVersion = "1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "myroutine-"
	ExportFilePrefix = "myroutine-backup-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "myroutine-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.myroutine"

	// Profile constraints
	MaxProfileNameLen   = 20
	MaxProfileSecretLen = 20
	ProfileSecretPrefix = "profile-secret:"
)

// Timer session states
const (
	StateIdle SessionState = iota
	StateRunning
	StatePaused
	StateFinished
)

// Storage keys. They match the keys the browser version kept in localStorage so a
// JSON store file and a web export can be read interchangeably.
const (
	KeyProfiles      = "perfis"
	KeyActiveProfile = "perfilAtivo"
	KeyRoutineData   = "routineData"
	KeyHabits        = "habitos"
	KeyGoals         = "metas"
	KeyTemplates     = "cronogramaTemplates"
	KeyTheme         = "theme"
	KeyPreferences   = "config"
)

// AllKeys lists every key the application owns, in a stable order.
var AllKeys = []string{
	KeyProfiles,
	KeyActiveProfile,
	KeyRoutineData,
	KeyHabits,
	KeyGoals,
	KeyTemplates,
	KeyTheme,
	KeyPreferences,
}
