// Package core runs mode analyses over CSV files and untyped value lists and
// keeps their results.
//
// It has no transport dependencies; the web server and the modecsv command
// both drive it.
//
// # Column analysis
//
// [AnalyzeColumns] streams a CSV once through [WrapForStreaming] (BOM strip,
// UTF-8 repair, byte counting), treats the first non-empty row as the header
// and collects every selected column. Each column is then typed with
// [InferFieldType] and its cells are canonicalised with [CanonicalCell], so
// "1,000" and "1000" or "1/5/2024" and "2024-01-05" count as one value. The
// canonical sequence goes to the mode package; the first raw spelling of each
// value is what the report shows.
//
// Cells equal to a missing token (see [DefaultMissingTokens]) and empty cells
// are missing values. A short row contributes missing values to the columns
// it lacks.
//
// # Service
//
// [Service] adds persistence and bookkeeping on top: a concurrency limit
// ([AnalysisLimiter]), a per-analysis timeout, storage of reports in
// PostgreSQL, an audit log and a retention job.
//
// # Errors
//
// Errors are plain wrapped errors. [MapError] turns any of them into a
// [UserMessage] with a stable code for display.
package core
