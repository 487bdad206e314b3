package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/slotparse/internal/extract"
	"github.com/ppiankov/slotparse/internal/model"
	"github.com/ppiankov/slotparse/internal/pipeline"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer JSON-lines requests on stdin",
	Long: `Serve reads one request per line from stdin and writes one JSON
response per line to stdout, in the same order. A line is either a JSON
request or bare text, which is parsed with the default language.

Errors are reported in the response:
  {"id":"...","lang":"xx","query":"...","values":null,"error":{"type":"configuration","message":"..."}}

Example:
  echo '{"lang":"fr","query":"quarante deux"}' | slotparse serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	return serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), p, logger)
}

// serve answers requests until in is exhausted or ctx is done
func serve(ctx context.Context, in io.Reader, out io.Writer, p *pipeline.Pipeline, logger *zap.Logger) error {
	renderer := pipeline.NewRenderer(false)
	w := bufio.NewWriter(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var resp model.Response
		if strings.HasPrefix(line, "{") {
			req, err := extract.DecodeRequest([]byte(line))
			if err != nil {
				resp = model.Response{Error: &model.ErrorInfo{Type: model.ErrorInvalidInput, Message: err.Error()}}
			} else {
				resp = p.Process(ctx, req)
			}
		} else {
			resp = p.Process(ctx, model.Request{Query: line})
		}

		if err := renderer.RenderResponse(w, resp); err != nil {
			return err
		}
		// one response per request, visible immediately
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("read requests", zap.Error(err))
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}
