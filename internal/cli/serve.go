package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/legalparse/internal/pipeline"
	"github.com/ppiankov/legalparse/internal/server"
)

var (
	serveAddr    string
	serveRate    float64
	serveBurst   int
	serveMaxBody int64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive extraction form",
	Long: `Serve starts an HTTP server with a form for pasting legal text and
viewing the extracted obligations and rights. A JSON endpoint is also
available at POST /api/v1/classify.

Example:
  legalparse serve
  legalparse serve --addr :9090 --rate 2 --burst 5`,
	Args: cobra.NoArgs,
	RunE: runServe,
	// Request logs are info level
	Annotations: map[string]string{logLevelAnnotation: "info"},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 5, "requests per second per client (0 disables limiting)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 10, "burst size per client")
	serveCmd.Flags().Int64Var(&serveMaxBody, "max-body", 1<<20, "max request body bytes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if flags.Changed("rate") {
		cfg.RateLimit.RequestsPerSecond = serveRate
	}
	if flags.Changed("burst") {
		cfg.RateLimit.BurstSize = serveBurst
	}
	if flags.Changed("max-body") {
		cfg.Server.MaxBodyBytes = serveMaxBody
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.NewPipeline(cfg, logger)
	srv := server.New(p, cfg, logger)

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving on http://%s\n", cfg.Server.Addr)
	logger.Debug("server config",
		zap.Float64("rate", cfg.RateLimit.RequestsPerSecond),
		zap.Int("burst", cfg.RateLimit.BurstSize),
		zap.Int64("max_body", cfg.Server.MaxBodyBytes))

	return srv.Run(ctx)
}
