package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/slotparse/internal/extract"
	"github.com/ppiankov/slotparse/internal/model"
	"github.com/ppiankov/slotparse/internal/pipeline"
	"github.com/ppiankov/slotparse/internal/worker"
)

var (
	batchHTML        bool
	batchConcurrency int
	batchRate        float64
	batchBurst       int
	batchFormat      string
	batchOutput      string
	batchNoCache     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse many queries from a file in parallel",
	Long: `Batch parses every query of a file concurrently:
- One query per line, either bare text or a JSON request
  {"id": "...", "lang": "fr", "query": "...", "kinds": [...], "reference_time": "..."}
- With --html, the file is an HTML document and each visible sentence is a query
- Responses are written in input order

Example:
  slotparse batch queries.txt
  slotparse batch queries.jsonl --concurrency 8 --format jsonl
  slotparse batch page.html --html --lang fr --output results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVar(&batchHTML, "html", false, "treat the input as an HTML document")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().Float64Var(&batchRate, "rate", 0, "max requests per second per language (default from config, 0 = unlimited)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 0, "rate limiter burst size (default from config)")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format: json, jsonl or yaml (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output file (default: stdout)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the response cache")
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.Batch.Concurrency = batchConcurrency
	}
	if batchRate > 0 {
		cfg.Batch.RequestsPerSecond = batchRate
	}
	if batchBurst > 0 {
		cfg.Batch.Burst = batchBurst
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}

	format, err := pipeline.ParseFormat(firstNonEmpty(batchFormat, cfg.Output.Format))
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	requests, err := readBatchInput(file, batchHTML)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Batch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Batch.Timeout)
		defer cancel()
	}

	logger.Info("batch started",
		zap.String("input", file),
		zap.Int("requests", len(requests)),
		zap.Int("workers", cfg.Batch.Concurrency),
	)

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	processor := worker.NewBatchProcessor(p, cfg.Batch.Concurrency, cfg.Batch.RequestsPerSecond, cfg.Batch.Burst)
	responses := processor.Process(ctx, requests)

	var out io.Writer = cmd.OutOrStdout()
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output file: %w", closeErr)
			}
		}()
		out = f
	}

	if err := pipeline.NewRenderer(cfg.Output.Pretty).RenderResponses(out, format, responses); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	failures := 0
	for _, resp := range responses {
		if resp.Error != nil {
			failures++
			logger.Debug("request failed", zap.String("id", resp.ID), zap.String("type", string(resp.Error.Type)))
		}
	}
	logger.Info("batch complete",
		zap.Int("total", len(responses)),
		zap.Int("success", len(responses)-failures),
		zap.Int("failures", failures),
	)
	return nil
}

func readBatchInput(path string, html bool) ([]model.Request, error) {
	if !html {
		return extract.ReadQueriesFromFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return extract.ReadHTMLQueries(f)
}
