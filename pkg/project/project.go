package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
)

//go:embed embed/SKILL.md
var defaultSkill []byte

// ErrTemplateNotFound is returned by InstallSkill when the configured
// template does not exist.
var ErrTemplateNotFound = errors.New("SKILL.md template not found")

type (
	// ProjectParams configures a Project.
	ProjectParams struct {
		// Dir is the project root. Relative paths in the configuration are
		// resolved against it.
		Dir string

		// Config is the migration index configuration. Default() is used when nil.
		Config *config.Config
	}

	Project struct {
		root   string
		config *config.Config
	}
)

// New creates a new Project rooted at p.Dir.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proj := project.New(project.ProjectParams{Dir: ".", Config: cfg})
//	out := proj.OutputDir("")
func New(p ProjectParams) *Project {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Default()
	}

	root := p.Dir
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	return &Project{root: root, config: cfg}
}

// Root returns the absolute project root.
func (p *Project) Root() string {
	return p.root
}

// Config returns the project configuration.
func (p *Project) Config() *config.Config {
	return p.config
}

// Path resolves path against the project root. Absolute paths are returned
// unchanged.
func (p *Project) Path(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(p.root, path)
}

// Rel returns path relative to the project root using forward slashes. Paths
// outside the root are returned unchanged.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}

// OutputDir returns the resolved directory reports are written to. A non-empty
// override replaces the configured output_path.
func (p *Project) OutputDir(override string) string {
	if override != "" {
		return p.Path(override)
	}

	return p.Path(p.config.OutputPath)
}

// Refresh removes dir and everything in it. It reports whether anything was
// removed.
func (p *Project) Refresh(dir string) (bool, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "failed to stat dir: %s", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return false, errors.Wrapf(err, "failed to remove dir: %s", dir)
	}

	return true, nil
}

// InstallSkill copies the SKILL.md template into dir unless the file already
// exists there. It reports whether the file was written.
//
// The configured skill_template_path is used when set; ErrTemplateNotFound is
// returned when it does not exist. Otherwise the embedded template is written.
func (p *Project) InstallSkill(dir string) (bool, error) {
	target := filepath.Join(dir, consts.SkillFileName)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to stat %s", target)
	}

	content := defaultSkill
	if tmpl := p.config.SkillTemplatePath; tmpl != "" {
		data, err := os.ReadFile(p.Path(tmpl))
		if os.IsNotExist(err) {
			return false, errors.Wrap(ErrTemplateNotFound, p.Path(tmpl))
		}
		if err != nil {
			return false, errors.Wrapf(err, "failed to read template: %s", tmpl)
		}

		content = data
	}

	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return false, errors.Wrapf(err, "failed to create directory %s", dir)
	}

	if err := os.WriteFile(target, content, consts.ModeFile); err != nil {
		return false, errors.Wrapf(err, "failed to write file %s", target)
	}

	return true, nil
}
