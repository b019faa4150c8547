// Package driver runs the homograph check over unit documents: it decodes
// them, checks every design unit and collects diagnostics per document.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/observ"
	"vhdlcheck/internal/pipeline"
	"vhdlcheck/internal/project"
	"vhdlcheck/internal/source"
	"vhdlcheck/internal/trace"
	"vhdlcheck/internal/unitfile"
)

// Options controls a check run. The zero value checks with one worker per
// CPU, no cache and the default diagnostic limit.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	Cache          *DiskCache
	Progress       pipeline.ProgressSink
	Timer          *observ.Timer
}

// DocumentResult is the outcome of checking one unit document.
type DocumentResult struct {
	Path   string
	Source source.FileID
	Units  int
	Cached bool
	Bag    *diag.Bag
}

// Result collects every document of a run. Documents keep input order.
type Result struct {
	FileSet   *source.FileSet
	Strings   *source.Interner
	Documents []DocumentResult
}

// Bag merges the document bags in input order, keeping at most max entries.
func (r *Result) Bag(max int) *diag.Bag {
	out := diag.NewBag(max)
	for _, doc := range r.Documents {
		if doc.Bag == nil {
			continue
		}
		for _, d := range doc.Bag.Items() {
			if !out.Add(d) {
				return out
			}
		}
	}
	return out
}

// HasErrors reports whether any document produced an error.
func (r *Result) HasErrors() bool {
	for _, doc := range r.Documents {
		if doc.Bag != nil && doc.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// CheckPaths checks every document in paths with a shared FileSet and
// Interner. Document failures become diagnostics; only cancellation is
// returned as an error.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*Result, error) {
	res := &Result{
		FileSet: source.NewFileSet(),
		Strings: source.NewInterner(),
	}
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "check_paths")
	span.WithExtra("documents", fmt.Sprint(len(paths)))
	defer span.End("")

	for _, p := range paths {
		pipeline.Emit(opts.Progress, pipeline.Event{File: p, Stage: pipeline.StageDecode, Status: pipeline.StatusQueued})
	}

	docs, err := checkDocumentsParallel(ctx, paths, res.FileSet, res.Strings, opts)
	res.Documents = docs
	return res, err
}

// CheckDocument decodes and checks a single document. Load and decode
// failures are reported in the returned bag.
func CheckDocument(ctx context.Context, path string, fs *source.FileSet, strs *source.Interner, opts Options) (DocumentResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "document")
	span.WithExtra("path", path)
	defer span.End("")

	res := DocumentResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	begin := time.Now()

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageDecode, Status: pipeline.StatusWorking})
	doc, raw, err := unitfile.ReadDocument(path)
	if err != nil {
		code := diag.IODecodeError
		if raw == nil {
			code = diag.IOLoadFileError
		}
		return failDocument(res, fs, opts, code, err, begin), nil
	}
	file, err := unitfile.OpenSource(doc, path, fs)
	if err != nil {
		return failDocument(res, fs, opts, diag.IOLoadFileError, err, begin), nil
	}
	res.Source = file

	key := documentKey(raw, fs.Get(file))
	if opts.Cache != nil {
		full := diag.NewBag(0)
		if units, ok := restoreCached(opts.Cache, key, file, full); ok {
			addAll(res.Bag, full)
			res.Units = units
			res.Cached = true
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache_hit", path, trace.CurrentSpan(ctx))
			pipeline.Emit(opts.Progress, pipeline.Event{
				File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusCached,
				Elapsed: time.Since(begin), Diagnostics: res.Bag.Len(),
			})
			return res, nil
		}
	}

	units, err := unitfile.Lower(doc, ast.NewBuilder(strs, file), fs)
	opts.Timer.Add("decode", time.Since(begin))
	if err != nil {
		return failDocument(res, fs, opts, diag.IODecodeError, fmt.Errorf("%s: %w", path, err), begin), nil
	}
	res.Units = len(units)

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusWorking})
	checkBegin := time.Now()
	// The cache keeps the unbounded list; the limit applies to this run only.
	bag, err := CheckUnits(ctx, units, strs, 0, opts.Jobs)
	opts.Timer.Add("check", time.Since(checkBegin))
	if err != nil {
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusError, Err: err})
		return res, err
	}
	addAll(res.Bag, bag)

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newPayload(path, res.Units, bag)); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file},
				fmt.Sprintf("failed to write cache entry: %v", err)).Emit()
		}
	}

	pipeline.Emit(opts.Progress, pipeline.Event{
		File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusDone,
		Elapsed: time.Since(begin), Diagnostics: res.Bag.Len(),
	})
	return res, nil
}

// addAll copies src into dst until dst is full.
func addAll(dst, src *diag.Bag) {
	for _, d := range src.Items() {
		if !dst.Add(d) {
			return
		}
	}
}

// failDocument records err as the only diagnostic of a document that could
// not be decoded. The span points at the document itself.
func failDocument(res DocumentResult, fs *source.FileSet, opts Options, code diag.Code, err error, begin time.Time) DocumentResult {
	file, ok := fs.GetLatest(res.Path)
	if !ok {
		file = fs.AddVirtual(res.Path, nil)
	}
	res.Source = file
	msg := err.Error()
	switch {
	case errors.Is(err, os.ErrNotExist):
		msg = "failed to read unit document: " + msg
	case code == diag.IODecodeError:
		msg = "malformed unit document: " + msg
	}
	res.Bag.Add(diag.NewError(code, source.Span{File: file}, msg))
	pipeline.Emit(opts.Progress, pipeline.Event{
		File: res.Path, Stage: pipeline.StageDecode, Status: pipeline.StatusError,
		Err: err, Elapsed: time.Since(begin), Diagnostics: res.Bag.Len(),
	})
	return res
}

func documentKey(raw []byte, src *source.File) project.Digest {
	var srcHash project.Digest
	if src != nil {
		srcHash = src.Hash
	}
	return project.Combine(project.DigestBytes(raw), srcHash, schemaDigest)
}
