package analyzer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/parser"
)

type (
	// Analyzer turns migration sources into Facts.
	Analyzer struct {
		maxFileSize int64
		workers     int
	}

	// Params configures an Analyzer.
	Params struct {
		// MaxFileSize is the largest file (in bytes) that will be analyzed.
		// Zero means consts.DefaultMaxFileSize.
		MaxFileSize int64

		// Workers bounds the number of files analyzed concurrently by
		// AnalyzeAll. Zero means one worker per CPU.
		Workers int
	}

	// Input identifies a migration file on disk.
	Input struct {
		Path         string
		RelativePath string
		Category     string
	}

	// Source is a migration whose content has already been read.
	Source struct {
		Input
		Content []byte
	}
)

// New creates a new Analyzer.
func New(p Params) *Analyzer {
	if p.MaxFileSize <= 0 {
		p.MaxFileSize = consts.DefaultMaxFileSize
	}

	return &Analyzer{maxFileSize: p.MaxFileSize, workers: p.Workers}
}

// WithWorkers returns a copy of the Analyzer using n workers. Values below one
// keep the current setting.
func (a *Analyzer) WithWorkers(n int) *Analyzer {
	if n <= 0 {
		return a
	}

	return &Analyzer{maxFileSize: a.maxFileSize, workers: n}
}

// MaxFileSize returns the size ceiling applied to every file.
func (a *Analyzer) MaxFileSize() int64 {
	return a.maxFileSize
}

// AnalyzeFile checks the size of the file, reads it and builds its Fact.
func (a *Analyzer) AnalyzeFile(in Input) (*fact.Fact, error) {
	info, err := os.Stat(in.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", in.Path)
	}

	if info.Size() > a.maxFileSize {
		return nil, &OversizedInputError{Path: in.Path, Size: info.Size(), Limit: a.maxFileSize}
	}

	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", in.Path)
	}

	return a.Analyze(Source{Input: in, Content: content})
}

// Analyze builds the Fact for a migration. The extractors run in a fixed
// order and the complexity score is computed last from their results.
func (a *Analyzer) Analyze(src Source) (*fact.Fact, error) {
	if size := int64(len(src.Content)); size > a.maxFileSize {
		return nil, &OversizedInputError{Path: src.Path, Size: size, Limit: a.maxFileSize}
	}

	filename := filepath.Base(src.Path)
	sequenceKey, displayName := parser.ParseFilename(filename)
	content := string(src.Content)

	relativePath := src.RelativePath
	if relativePath == "" {
		relativePath = src.Path
	}

	f := &fact.Fact{
		Identity: fact.Identity{
			SequenceKey:  sequenceKey,
			DisplayName:  displayName,
			Filename:     filename,
			Path:         src.Path,
			RelativePath: relativePath,
			Category:     src.Category,
			Checksum:     fmt.Sprintf("%016x", xxhash.Sum64(src.Content)),
		},
		Tables:        parser.DetectTables(content),
		StructuralOps: parser.ExtractStructuralOps(content),
		DataOps:       parser.ExtractDataOps(content),
		RawStatements: parser.ExtractRawStatements(content),
		Dependencies:  parser.ExtractDependencies(content),
		Columns:       parser.ExtractColumns(content),
		Indexes:       parser.ExtractIndexes(content),
		ForeignKeys:   parser.ExtractForeignKeys(content),
		MethodsUsed:   parser.ExtractMethodsUsed(content),
	}

	f.HasDataModifications = parser.HasDataModifications(content, f.DataOps)
	f.ComplexityScore = parser.FactComplexity(f)

	return f, nil
}
