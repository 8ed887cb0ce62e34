// Package batch compares many packages concurrently from a fixture directory laid out as
// <dir>/<package_id>/rpc.json and <dir>/<package_id>/bytecode.json.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	smi "github.com/Evan-Kim2028/sui-move-interface-extractor"
)

// Fixture file names inside each package directory.
const (
	RPCFile      = "rpc.json"
	BytecodeFile = "bytecode.json"
)

// Options configures Run.
type Options struct {
	// Concurrency bounds the packages compared at once. Values below 1 mean 1.
	Concurrency int
	Compare     smi.CompareOptions
	// Strict runs CheckShape with the schema version gate before comparing. A package that
	// fails it is reported with Err and not compared.
	Strict bool
	Logger *slog.Logger
}

// Result is the outcome for one package. Exactly one of Report and Err is meaningful.
type Result struct {
	PackageID string
	Report    smi.Report
	Err       error
}

// Totals aggregates a batch.
type Totals struct {
	Packages  int `json:"packages"`
	Matching  int `json:"matching"`
	Divergent int `json:"divergent"`
	Failed    int `json:"failed"`
}

// Tally counts results by outcome.
func Tally(results []Result) Totals {
	t := Totals{Packages: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			t.Failed++
		case r.Report.OK():
			t.Matching++
		default:
			t.Divergent++
		}
	}
	return t
}

// Run compares every package directory under dir and returns results sorted by package id.
// A package whose fixtures cannot be loaded is reported through Result.Err without stopping the
// others. Run itself fails only when dir cannot be listed or ctx is cancelled.
func Run(ctx context.Context, dir string, opts Options) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: list %s: %w", dir, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}

	results := make([]Result, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = comparePackage(filepath.Join(dir, id), id, opts)
			logResult(logger, results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return results, nil
}

func comparePackage(dir, id string, opts Options) Result {
	res := Result{PackageID: id}
	rpc, err := ReadJSONFile(filepath.Join(dir, RPCFile))
	if err != nil {
		res.Err = err
		return res
	}
	bytecode, err := ReadJSONFile(filepath.Join(dir, BytecodeFile))
	if err != nil {
		res.Err = err
		return res
	}
	if opts.Strict {
		if err := smi.CheckShape(rpc, bytecode, smi.WithRequireSupportedSchemaVersion()); err != nil {
			res.Err = err
			return res
		}
	}
	summary, mismatches := smi.CompareWithOptions(rpc, bytecode, opts.Compare)
	res.Report = smi.Report{PackageID: id, Summary: summary, Mismatches: mismatches}
	return res
}

func logResult(logger *slog.Logger, r Result) {
	switch {
	case r.Err != nil:
		logger.Error("package comparison failed", "package_id", r.PackageID, "error", r.Err)
	case r.Report.OK():
		logger.Info("package interfaces match", "package_id", r.PackageID,
			"modules_compared", r.Report.Summary.ModulesCompared)
	default:
		logger.Warn("divergence detected", "package_id", r.PackageID,
			"mismatches_total", r.Report.Summary.MismatchesTotal)
	}
}

// ReadJSONFile decodes one JSON document from path, keeping numbers as json.Number.
func ReadJSONFile(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: trailing data after JSON document", filepath.Base(path))
	}
	return v, nil
}
