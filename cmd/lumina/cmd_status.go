package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/config"
)

var statusSaveKey bool

// statusCmd shows the effective configuration
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and API key status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusSaveKey, "save-key", false, "Persist --api-key to the config file")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusSaveKey {
		if apiKey == "" {
			return fmt.Errorf("--save-key needs --api-key")
		}
		saved := *cfg
		saved.APIKey = apiKey
		if err := saved.Save(config.DefaultPath()); err != nil {
			return err
		}
		fmt.Println("key saved to", config.DefaultPath())
	}

	keyState := "not configured"
	if cfg.APIKey != "" {
		keyState = fmt.Sprintf("configured (%d chars)", len(cfg.APIKey))
	}

	store, err := catalog.Load()
	if err != nil {
		return err
	}

	fmt.Println("config file: ", config.DefaultPath())
	fmt.Println("api key:     ", keyState)
	fmt.Println("chat model:  ", cfg.ChatModelName())
	fmt.Println("fast model:  ", cfg.FastModelName())
	fmt.Println("tts model:   ", cfg.TTSModelName())
	fmt.Println("vision model:", cfg.VisionModelName())
	fmt.Println("video model: ", cfg.VideoModelName())
	fmt.Printf("video polls:  every %s, max %d\n", cfg.PollInterval(), cfg.MaxPolls())
	fmt.Printf("catalog:      %d products, %d categories\n", store.Len(), len(store.Categories())-1)
	return nil
}
