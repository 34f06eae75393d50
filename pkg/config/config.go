package config

import (
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"gopkg.in/yaml.v3"
)

type (
	// MigrationType is a named directory of migrations. Every Fact produced from
	// the directory is labeled with the type's name as its category.
	MigrationType struct {
		// Name is the key of the type in the migration_types mapping
		Name string `yaml:"-"`

		// Path is the directory holding the migrations, relative to the project root
		Path string `yaml:"path"`

		// Include lists doublestar patterns (relative to Path) selecting migration files
		Include []string `yaml:"include,omitempty"`

		// Exclude lists doublestar patterns (relative to Path) removed from the selection
		Exclude []string `yaml:"exclude,omitempty"`
	}

	// MigrationTypes keeps the migration types in the order they were declared.
	MigrationTypes []*MigrationType

	// Config represents the migration index configuration.
	Config struct {
		// OutputPath is the directory reports are written to
		OutputPath string `yaml:"output_path"`

		// MaxFileSize is the largest migration file (in bytes) that will be analyzed
		MaxFileSize int64 `yaml:"max_file_size"`

		// Workers bounds the number of files analyzed concurrently. Zero means one
		// worker per CPU.
		Workers int `yaml:"workers"`

		// SkillTemplatePath points at the SKILL.md copied next to the reports. The
		// embedded template is used when empty.
		SkillTemplatePath string `yaml:"skill_template_path,omitempty"`

		// MigrationTypes are the directories to index
		MigrationTypes MigrationTypes `yaml:"migration_types"`
	}
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		OutputPath:  consts.DefaultOutputPath,
		MaxFileSize: consts.DefaultMaxFileSize,
		MigrationTypes: MigrationTypes{
			{
				Name:    consts.DefaultMigrationType,
				Path:    consts.DefaultMigrationsPath,
				Include: []string{consts.DefaultInclude},
			},
		},
	}
}

// UnmarshalYAML decodes a mapping of type name to settings, preserving the
// declaration order.
func (m *MigrationTypes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("migration_types must be a mapping (line %d)", node.Line)
	}

	types := make(MigrationTypes, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		mt := &MigrationType{Name: key.Value}
		if err := value.Decode(mt); err != nil {
			return errors.Wrapf(err, "invalid migration type: %s", key.Value)
		}

		types = append(types, mt)
	}

	*m = types
	return nil
}

// MarshalYAML encodes the types back into an ordered mapping.
func (m MigrationTypes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, mt := range m {
		value := &yaml.Node{}
		if err := value.Encode(mt); err != nil {
			return nil, errors.Wrapf(err, "failed to encode migration type: %s", mt.Name)
		}

		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: mt.Name}, value)
	}

	return node, nil
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// Values missing from the document keep their defaults. An empty document
// yields Default(). Types without include patterns select "*.php".
//
// Example:
//
//	yamlData := `
//	output_path: docs/migrations
//	migration_types:
//	  default:
//	    path: database/migrations
//	  tenant:
//	    path: database/migrations/tenant
//	    exclude: ["*_backup.php"]
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(cfg.TypeNames()) // [default tenant]
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	for _, mt := range cfg.MigrationTypes {
		if len(mt.Include) == 0 {
			mt.Include = []string{consts.DefaultInclude}
		}
	}

	return cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Load resolves the configuration for the current directory.
//
// The .env file is loaded first (a missing file is fine) without replacing
// variables already set. The config file named by MIGRATION_INDEX_CONFIG, or
// migration-index.yaml, is read when present; otherwise Default() is used.
// MIGRATION_INDEX_OUTPUT and MIGRATION_INDEX_MAX_FILE_SIZE then override the
// file values before the result is validated.
func Load() (*Config, error) {
	if err := godotenv.Load(consts.DefaultEnvFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrapf(err, "failed to load %s", consts.DefaultEnvFile)
	}

	path := os.Getenv(consts.EnvConfig)
	if path == "" {
		path = consts.DefaultConfigFile
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if cfg, err = LoadConfigFile(path); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) || os.Getenv(consts.EnvConfig) != "" {
		return nil, errors.Wrapf(err, "failed to stat config file: %s", path)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides the output path and size ceiling from the environment.
func (c *Config) ApplyEnv() error {
	if out := os.Getenv(consts.EnvOutput); out != "" {
		c.OutputPath = out
	}

	if raw := os.Getenv(consts.EnvMaxFileSize); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid %s: %s", consts.EnvMaxFileSize, raw)
		}
		c.MaxFileSize = size
	}

	return nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return errors.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}

	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}

	if len(c.MigrationTypes) == 0 {
		return errors.New("at least one migration type must be configured")
	}

	for _, mt := range c.MigrationTypes {
		if mt.Path == "" {
			return errors.Errorf("migration type %q has no path", mt.Name)
		}
	}

	return nil
}

// Type returns the migration type with the given name.
func (c *Config) Type(name string) (*MigrationType, bool) {
	for _, mt := range c.MigrationTypes {
		if mt.Name == name {
			return mt, true
		}
	}

	return nil, false
}

// TypeNames returns the names of the configured migration types in declaration order.
func (c *Config) TypeNames() []string {
	names := make([]string, len(c.MigrationTypes))
	for i, mt := range c.MigrationTypes {
		names[i] = mt.Name
	}
	return names
}
