// smi-compare checks an RPC-reported Sui Move package interface against the interface decoded
// from its bytecode and prints a mismatch report.
// Exit code 0 = interfaces match. Exit code 1 = divergence detected. Exit code 2 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	smi "github.com/Evan-Kim2028/sui-move-interface-extractor"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/internal/batch"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/internal/config"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/internal/observability"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/typetag"
)

const (
	exitMatch      = 0
	exitDivergence = 1
	exitError      = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliOptions struct {
	rpcPath      string
	bytecodePath string
	packageID    string
	batchDir     string
	strict       bool
	format       string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}

	fs := flag.NewFlagSet("smi-compare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o cliOptions
	fs.StringVar(&o.rpcPath, "rpc", "", "path to the RPC normalized-modules JSON")
	fs.StringVar(&o.bytecodePath, "bytecode", "", "path to the bytecode interface JSON")
	fs.StringVar(&o.packageID, "package-id", "", "package id shown in the report")
	fs.StringVar(&o.batchDir, "batch-dir", "", "directory of <package_id>/{rpc.json,bytecode.json} to compare concurrently")
	fs.IntVar(&cfg.MaxMismatches, "max-mismatches", cfg.MaxMismatches, "maximum mismatch records per package")
	fs.BoolVar(&cfg.IncludeValues, "include-values", cfg.IncludeValues, "attach offending values to mismatch records")
	fs.BoolVar(&o.strict, "strict", false, "fail on malformed input and unsupported bytecode schema_version")
	fs.StringVar(&o.format, "format", "json", "output format: json or text")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	logger := observability.InitLogger(stderr, cfg.LogLevel)

	if err := o.check(cfg); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		fs.Usage()
		return exitError
	}

	if o.batchDir != "" {
		return runBatch(ctx, o, cfg, logger, stdout)
	}
	return runSingle(o, cfg, logger, stdout)
}

func (o cliOptions) check(cfg config.Config) error {
	switch {
	case o.format != "json" && o.format != "text":
		return fmt.Errorf("%w: --format must be json or text (got %q)", errUsage, o.format)
	case o.packageID != "" && !typetag.IsAddress(o.packageID):
		return fmt.Errorf("%w: --package-id %q is not a Sui address", errUsage, o.packageID)
	case cfg.MaxMismatches < 0:
		return fmt.Errorf("%w: --max-mismatches must be >= 0", errUsage)
	case o.batchDir != "" && (o.rpcPath != "" || o.bytecodePath != ""):
		return fmt.Errorf("%w: --batch-dir cannot be combined with --rpc/--bytecode", errUsage)
	case o.batchDir == "" && (o.rpcPath == "" || o.bytecodePath == ""):
		return fmt.Errorf("%w: --rpc and --bytecode are required", errUsage)
	}
	return nil
}

func runSingle(o cliOptions, cfg config.Config, logger *slog.Logger, stdout io.Writer) int {
	rpc, err := batch.ReadJSONFile(o.rpcPath)
	if err != nil {
		logger.Error("load rpc interface failed", "error", err)
		return exitError
	}
	bytecode, err := batch.ReadJSONFile(o.bytecodePath)
	if err != nil {
		logger.Error("load bytecode interface failed", "error", err)
		return exitError
	}
	if o.strict {
		if err := smi.CheckShape(rpc, bytecode, smi.WithRequireSupportedSchemaVersion()); err != nil {
			logger.Error("shape check failed", "error", err)
			return exitError
		}
	}

	logger.Info("comparing package", "package_id", o.packageID, "rpc", o.rpcPath, "bytecode", o.bytecodePath)
	summary, mismatches := smi.CompareWithOptions(rpc, bytecode, cfg.CompareOptions())
	report := smi.Report{PackageID: o.packageID, Summary: summary, Mismatches: mismatches}

	if err := writeReport(stdout, o.format, report); err != nil {
		logger.Error("write report failed", "error", err)
		return exitError
	}
	if !report.OK() {
		logger.Warn("divergence detected", "package_id", o.packageID,
			"mismatches_total", summary.MismatchesTotal, "truncated", report.Truncated())
		return exitDivergence
	}
	logger.Info("interfaces match", "package_id", o.packageID)
	return exitMatch
}

func writeReport(w io.Writer, format string, r smi.Report) error {
	if format == "text" {
		return r.WriteText(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// batchEntry is the JSON form of one batch result.
type batchEntry struct {
	PackageID string      `json:"package_id"`
	Error     string      `json:"error,omitempty"`
	Report    *smi.Report `json:"report,omitempty"`
}

type batchOutput struct {
	Totals   batch.Totals `json:"totals"`
	Packages []batchEntry `json:"packages"`
}

func runBatch(ctx context.Context, o cliOptions, cfg config.Config, logger *slog.Logger, stdout io.Writer) int {
	logger.Info("comparing batch", "dir", o.batchDir, "concurrency", cfg.BatchConcurrency)
	results, err := batch.Run(ctx, o.batchDir, batch.Options{
		Concurrency: cfg.BatchConcurrency,
		Compare:     cfg.CompareOptions(),
		Strict:      o.strict,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("batch comparison failed", "error", err)
		return exitError
	}
	totals := batch.Tally(results)

	if err := writeBatch(stdout, o.format, totals, results); err != nil {
		logger.Error("write report failed", "error", err)
		return exitError
	}

	logger.Info("batch complete", "packages", totals.Packages, "matching", totals.Matching,
		"divergent", totals.Divergent, "failed", totals.Failed)
	switch {
	case totals.Failed > 0:
		return exitError
	case totals.Divergent > 0:
		return exitDivergence
	default:
		return exitMatch
	}
}

func writeBatch(w io.Writer, format string, totals batch.Totals, results []batch.Result) error {
	if format == "text" {
		for _, r := range results {
			if r.Err != nil {
				if _, err := fmt.Fprintf(w, "%s: error: %v\n", r.PackageID, r.Err); err != nil {
					return err
				}
				continue
			}
			if err := r.Report.WriteText(w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%d packages: %d matching, %d divergent, %d failed\n",
			totals.Packages, totals.Matching, totals.Divergent, totals.Failed)
		return err
	}

	out := batchOutput{Totals: totals, Packages: make([]batchEntry, 0, len(results))}
	for _, r := range results {
		e := batchEntry{PackageID: r.PackageID}
		if r.Err != nil {
			e.Error = r.Err.Error()
		} else {
			report := r.Report
			e.Report = &report
		}
		out.Packages = append(out.Packages, e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
