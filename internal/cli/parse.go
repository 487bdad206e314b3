package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/slotparse/internal/dispatch"
	"github.com/ppiankov/slotparse/internal/pipeline"
	"github.com/ppiankov/slotparse/internal/rules"
)

var (
	parseKinds  []string
	parseRef    string
	parseFormat string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Extract slot values from a single text",
	Long: `Parse runs the language parser over the text and prints every
recognized value, in order of appearance.

With --kinds only the listed kinds are extracted; when spans overlap, the
kind listed first wins.

Example:
  slotparse parse "tomorrow I will work for 3 hours"
  slotparse parse "tomorrow I will work for 3 hours" --kinds duration
  slotparse parse --lang fr "quarante deux"
  slotparse parse "next monday at 5pm" --ref 2024-05-01T09:00:00Z --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringSliceVarP(&parseKinds, "kinds", "k", nil, "kinds to extract, in priority order (see 'slotparse kinds')")
	parseCmd.Flags().StringVar(&parseRef, "ref", "", "reference time, RFC 3339 (default: now)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: json or yaml (default from config)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	format, err := pipeline.ParseFormat(firstNonEmpty(parseFormat, cfg.Output.Format))
	if err != nil {
		return err
	}

	ref := time.Now()
	if parseRef != "" {
		if ref, err = time.Parse(time.RFC3339, parseRef); err != nil {
			return fmt.Errorf("invalid --ref: %w", err)
		}
	}

	kinds := parseKinds
	if len(kinds) == 0 {
		kinds = cfg.Parser.Kinds
	}

	d, err := dispatch.New(cfg.Parser.Lang,
		dispatch.WithBuilder(dispatch.RulesBuilder(rules.MaxQueryBytes(cfg.Parser.MaxQueryBytes))),
		dispatch.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	logger.Debug("parsing", zap.String("text", text), zap.Time("ref", ref), zap.Strings("kinds", kinds))

	values, err := d.ParseAt(text, ref, kinds)
	if err != nil {
		return err
	}

	return pipeline.NewRenderer(cfg.Output.Pretty).RenderValues(cmd.OutOrStdout(), format, values)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
