// Package analyzer builds migration Facts from source files.
//
// An Analyzer runs every extractor from the parser package over one file's
// contents and assembles the results into a single fact.Fact. Facts are either
// complete or not returned at all: a file larger than the configured ceiling
// fails with an OversizedInputError before it is read.
//
// AnalyzeAll processes many files with a bounded pool of workers. Failures are
// reported per file through FileError values and never stop the remaining
// files from being analyzed. Results keep the order of the inputs.
//
// # Usage Example
//
//	a := analyzer.New(analyzer.Params{MaxFileSize: consts.DefaultMaxFileSize})
//	facts, failures, err := a.AnalyzeAll(ctx, inputs)
//	if err != nil {
//		return err // context cancelled
//	}
//
//	for _, f := range failures {
//		log.WithField("path", f.Path).Warn(f.Err)
//	}
package analyzer
