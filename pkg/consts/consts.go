package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)

const (
	// DefaultConfigFile is the config file looked up in the working directory
	DefaultConfigFile = "migration-index.yaml"

	// DefaultEnvFile holds optional environment overrides
	DefaultEnvFile = ".env"

	// DefaultOutputPath is where reports are written when nothing else is configured
	DefaultOutputPath = ".claude/skills/laravel-migration-searcher"

	// DefaultMigrationType is the category label of the implicit migration type
	DefaultMigrationType = "default"

	// DefaultMigrationsPath is the path of the implicit migration type
	DefaultMigrationsPath = "database/migrations"

	// DefaultInclude matches migration sources inside a migration type directory
	DefaultInclude = "*.php"

	// DefaultMaxFileSize is the largest migration file (in bytes) that will be analyzed
	DefaultMaxFileSize int64 = 5 * 1024 * 1024

	// SkillFileName is the name of the template copied next to the reports
	SkillFileName = "SKILL.md"
)

const (
	// EnvConfig overrides the config file location
	EnvConfig = "MIGRATION_INDEX_CONFIG"

	// EnvOutput overrides output_path
	EnvOutput = "MIGRATION_INDEX_OUTPUT"

	// EnvMaxFileSize overrides max_file_size
	EnvMaxFileSize = "MIGRATION_INDEX_MAX_FILE_SIZE"
)

const (
	// ReportFull is the chronological index with every detail of each migration
	ReportFull = "full"

	// ReportByCategory groups migrations by migration type
	ReportByCategory = "by-category"

	// ReportByTable groups migrations by the tables they touch
	ReportByTable = "by-table"

	// ReportByOperation groups migrations by table operation
	ReportByOperation = "by-operation"

	// ReportStats is the machine readable statistics summary
	ReportStats = "stats"
)
