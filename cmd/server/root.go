package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ai-service/internal/adapter/api"
	"ai-service/internal/adapter/client"
	"ai-service/internal/config"
	"ai-service/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "ai-service",
	Short: "HTTP service forwarding prompts to Gemini.",
	Long: `Serves GET /, GET /health and POST /ai/generate. Generate requests are
forwarded once to the configured Gemini model and answered with its text.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil {
			log.Warnf("%s file not found, using system environment variables", envFile)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return serve(cmd.Context(), cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the service name and version.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Service.Name, cfg.Service.Version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")
	rootCmd.Flags().String("host", "0.0.0.0", "listen host (overrides HOST)")
	rootCmd.Flags().Int("port", 8000, "listen port (overrides PORT)")
	rootCmd.AddCommand(versionCmd)
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.SetLevel(parseLevel(cfg.Logger.Level))

	gemini, err := client.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to init genai client: %w", err)
	}
	provider := usecase.NewBoundedProvider(gemini, cfg.Gemini.Timeout)
	generator := usecase.NewGenerator(provider)

	app := fiber.New(fiber.Config{
		AppName: fmt.Sprintf("%s v%s", cfg.Service.Name, cfg.Service.Version),
	})
	handler := api.NewPromptHandler(generator, cfg.Service.Name)
	api.SetupRouter(app, handler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("%s running on %s (model %s)", cfg.Service.Name, cfg.HTTP.Addr(), gemini.Model())
	return app.Listen(cfg.HTTP.Addr())
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
