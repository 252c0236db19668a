package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/legalparse/internal/model"
	"github.com/ppiankov/legalparse/internal/pipeline"
)

var (
	inText       string
	inURL        string
	outJSON      string
	outMD        string
	outFormat    string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noFooter     bool
	insecureTLS  bool
	ignoreRobots bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract obligations and rights from a document",
	Long: `Extract reads a legal document and lists the sentences that impose
obligations and the sentences that grant rights.

Input is taken from --text, --url, a file argument (plain text or HTML),
or standard input when none of these is given.

Example:
  legalparse extract contract.txt
  legalparse extract --text "The tenant must pay rent by the 5th."
  legalparse extract --url https://example.com/terms --json terms.json
  cat lease.txt | legalparse extract --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Input flags
	extractCmd.Flags().StringVar(&inText, "text", "", "document text to classify")
	extractCmd.Flags().StringVar(&inURL, "url", "", "fetch the document from a URL")

	// Output flags
	extractCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	extractCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	extractCmd.Flags().StringVar(&outFormat, "format", "text", "stdout format (text, json)")
	extractCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	extractCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout for --url")
	extractCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	extractCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max document bytes to read")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	extractCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	extractCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "do not consult robots.txt before fetching")
}

// applyExtractFlags overrides config values with flags the user set
func applyExtractFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if flags.Changed("ignore-robots") {
		cfg.HTTP.IgnoreRobots = ignoreRobots
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	cfg.Output.Verbose = verbose
}

// fetchContext bounds a URL extraction, covering robots.txt plus fetch
// retries. A non-positive timeout means no deadline, as for http.Client.
func fetchContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, 4*timeout)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if outFormat != "text" && outFormat != "json" {
		return fmt.Errorf("invalid --format %q (want text or json)", outFormat)
	}
	if inURL != "" && (inText != "" || len(args) > 0) {
		return errors.New("--url cannot be combined with --text or a file argument")
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyExtractFlags(cmd, cfg)

	ctx := cmd.Context()
	p := pipeline.NewPipeline(cfg, logger)

	var report *model.Report
	switch {
	case inURL != "":
		logger.Debug("extracting from URL", zap.String("url", inURL))
		urlCtx, cancel := fetchContext(ctx, cfg.HTTP.Timeout)
		defer cancel()
		report, err = p.ProcessURL(urlCtx, inURL)
	case cmd.Flags().Changed("text"):
		report, err = p.ProcessText(ctx, "text", inText)
	case len(args) == 1 && args[0] != "-":
		logger.Debug("extracting from file", zap.String("path", args[0]))
		report, err = p.ProcessFile(ctx, args[0])
	default:
		report, err = p.ProcessReader(ctx, "stdin", cmd.InOrStdin())
	}
	if errors.Is(err, pipeline.ErrEmptyInput) {
		return err
	}
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if verbose {
		stats := report.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Read %d sentences\n", report.Sentences)
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Found %d obligations, %d rights\n\n", stats.Obligations, stats.Rights)
	}

	if outFormat == "json" {
		if err := p.RenderReport(io.Discard, report, outJSON, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		return p.Renderer().WriteJSON(cmd.OutOrStdout(), report)
	}

	if err := p.RenderReport(cmd.OutOrStdout(), report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
