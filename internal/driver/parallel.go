package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/sema"
	"vhdlcheck/internal/source"
	"vhdlcheck/internal/trace"
)

func workerLimit(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// checkDocumentsParallel runs CheckDocument for every path, at most jobs at
// a time. Results keep the order of paths.
func checkDocumentsParallel(ctx context.Context, paths []string, fs *source.FileSet, strs *source.Interner, opts Options) ([]DocumentResult, error) {
	results := make([]DocumentResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	// Units of one document are checked serially when documents already fan out.
	inner := opts
	if len(paths) > 1 {
		inner.Jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(opts.Jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := CheckDocument(gctx, path, fs, strs, inner)
			// each goroutine owns results[i]
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// CheckUnits checks units concurrently, each into its own bag, and merges
// the bags in unit order so output does not depend on scheduling.
func CheckUnits(ctx context.Context, units []*ast.DesignUnit, strs *source.Interner, maxDiagnostics, jobs int) (*diag.Bag, error) {
	out := diag.NewBag(maxDiagnostics)
	if len(units) == 0 {
		return out, nil
	}

	bags := make([]*diag.Bag, len(units))
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(jobs, len(units)))

	for i, unit := range units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(maxDiagnostics)
			span := trace.Begin(tracer, trace.ScopeUnit, unitLabel(unit, strs), parent)
			sema.CheckDesignUnit(unit, sema.Options{
				Reporter: &diag.BagReporter{Bag: bag},
				Strings:  strs,
			})
			span.WithExtra("diagnostics", strconv.Itoa(bag.Len()))
			span.End("")
			bags[i] = bag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}

	for _, bag := range bags {
		for _, d := range bag.Items() {
			if !out.Add(d) {
				return out, nil
			}
		}
	}
	return out, nil
}

func unitLabel(unit *ast.DesignUnit, strs *source.Interner) string {
	if unit == nil || unit.Unit == nil {
		return "unit"
	}
	kind := ast.UnitKind(unit.Unit)
	if strs == nil {
		return kind
	}
	name, ok := strs.Lookup(unit.Unit.UnitName().Name)
	if !ok {
		return kind
	}
	return kind + " " + name
}
