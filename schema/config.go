package schema

// Defaults applied by NormalizeServiceConfig.
const (
	// DefaultLanguage is the language tag assigned to fresh documents.
	DefaultLanguage LanguageID = "javascript"
	// DefaultConsoleMaxLines caps the per-session console scrollback.
	DefaultConsoleMaxLines = 2000
	// DefaultHistoryMax caps the per-session submission history.
	DefaultHistoryMax = 50
	// DefaultMaxCodeBytes caps the size of a shared document.
	DefaultMaxCodeBytes = 1 << 20
)

// DefaultUserColors is the palette cycled through as users join a
// session. Mirrors the presentation layer's avatar colors.
var DefaultUserColors = []string{
	"#ef4444",
	"#f97316",
	"#eab308",
	"#22c55e",
	"#06b6d4",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
}

// ServiceConfig controls session behavior. The zero value is usable
// after NormalizeServiceConfig.
type ServiceConfig struct {
	// DefaultLanguage seeds the document language for new sessions.
	DefaultLanguage LanguageID
	// ConsoleMaxLines bounds console scrollback per session.
	ConsoleMaxLines int
	// HistoryMax bounds submission history per session.
	HistoryMax int
	// MaxCodeBytes bounds SetCode payloads. Zero means the default;
	// negative disables the limit.
	MaxCodeBytes int
	// UserColors is the palette cycled as users join. Empty means
	// DefaultUserColors.
	UserColors []string
	// DisableAuditLogging silences per-operation audit log lines.
	DisableAuditLogging bool
}

// NormalizeServiceConfig fills zero fields with defaults.
func NormalizeServiceConfig(cfg ServiceConfig) ServiceConfig {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = DefaultLanguage
	}
	cfg.DefaultLanguage = NormalizeLanguageID(cfg.DefaultLanguage)
	if cfg.ConsoleMaxLines <= 0 {
		cfg.ConsoleMaxLines = DefaultConsoleMaxLines
	}
	if cfg.HistoryMax <= 0 {
		cfg.HistoryMax = DefaultHistoryMax
	}
	if cfg.MaxCodeBytes == 0 {
		cfg.MaxCodeBytes = DefaultMaxCodeBytes
	}
	if len(cfg.UserColors) == 0 {
		cfg.UserColors = DefaultUserColors
	}
	return cfg
}
