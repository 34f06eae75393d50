package index

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/format"
)

var filenames = map[string]string{
	consts.ReportFull:        "index-full.md",
	consts.ReportByCategory:  "index-by-type.md",
	consts.ReportByTable:     "index-by-table.md",
	consts.ReportByOperation: "index-by-operation.md",
	consts.ReportStats:       "stats.json",
}

type (
	// Generator renders reports and writes them to an output directory.
	Generator struct {
		outputDir string
		formatter *format.Formatter
		writer    Writer
	}

	// GeneratedFile describes a written report.
	GeneratedFile struct {
		Report string
		Path   string
		Size   int64
	}
)

// Filename returns the file a report is written to. Unknown reports are
// written as "<name>.md".
func Filename(report string) string {
	if name, ok := filenames[report]; ok {
		return name
	}

	return report + ".md"
}

// NewGenerator creates a Generator writing to outputDir. A nil formatter uses
// format.NewDefault() and a nil writer uses FileWriter.
func NewGenerator(outputDir string, formatter *format.Formatter, writer Writer) *Generator {
	if formatter == nil {
		formatter = format.NewDefault()
	}
	if writer == nil {
		writer = FileWriter{}
	}

	return &Generator{
		outputDir: outputDir,
		formatter: formatter,
		writer:    writer,
	}
}

// OutputDir returns the directory reports are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// Generate renders every report for facts and writes them. Files are returned
// in report order. Nothing is written when rendering fails.
func (g *Generator) Generate(facts []*fact.Fact) ([]GeneratedFile, error) {
	reports, err := g.formatter.Reports(facts)
	if err != nil {
		return nil, err
	}

	if err := g.writer.EnsureDir(g.outputDir); err != nil {
		return nil, err
	}

	files := make([]GeneratedFile, 0, len(reports))
	for _, r := range reports {
		path := filepath.Join(g.outputDir, Filename(r.Name))
		if err := g.writer.Write(path, []byte(r.Body)); err != nil {
			return files, errors.Wrapf(err, "failed to write %s report", r.Name)
		}

		files = append(files, GeneratedFile{Report: r.Name, Path: path, Size: int64(len(r.Body))})
	}

	return files, nil
}
