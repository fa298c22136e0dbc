// Package main provides the lumina CLI entry point. Running without a
// subcommand launches the interactive storefront.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/younglord3302/Lumina/cmd/lumina/shop"
	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/config"
	"github.com/younglord3302/Lumina/internal/gateway"
	"github.com/younglord3302/Lumina/internal/logging"
)

var (
	// Global flags
	verbose bool
	apiKey  string
	timeout time.Duration

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina - a terminal storefront with an AI shopping assistant",
	Long: `Lumina is a terminal storefront backed by the Gemini API.

Browse the catalog, manage a bag, wishlist and compare set, and talk to an
AI shopping assistant with voice input and spoken replies.

Run without arguments to open the interactive storefront.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.DefaultPath())
		if err != nil {
			return err
		}
		if apiKey != "" {
			cfg.APIKey = apiKey
		}

		// The interactive UI owns the terminal; it logs to a file instead.
		if cmd.CalledAs() == "lumina" {
			logger, err = logging.NewFile(config.Dir(), cfg.DebugLog)
			return err
		}
		logger, err = logging.NewCLI(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runStorefront launches the interactive TUI.
func runStorefront() error {
	store, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("storefront starting",
		zap.String("category", logging.CategoryBoot), zap.Int("products", store.Len()))

	var gw *gateway.Client
	if cfg.APIKey != "" {
		gw, err = gateway.New(context.Background(), cfg, logger)
		if err != nil {
			// Browse-only mode still works without the gateway.
			logger.Warn("gateway unavailable",
				zap.String("category", logging.CategoryBoot), zap.Error(err))
			gw = nil
		}
	}

	model := shop.New(store, cfg, logger, gw)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newGateway dials the API for the one-shot subcommands.
func newGateway(ctx context.Context) (*gateway.Client, error) {
	return gateway.New(ctx, cfg, logger)
}

// opContext applies the global timeout flag.
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
