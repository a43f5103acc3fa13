package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bos-app/kjv/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set values in the global config file (~/.config/kjv/config.yml).

Usage:
  kjv config                                  # Show all config
  kjv config data-path                        # Get specific value
  kjv config data-path ~/bibles/kjv.json      # Set value
  kjv config search-limit 50

Keys:
  data-path     Document to read when --data and KJV_DATA are unset
  index-path    Search index file (default: index.db in the kjv cache dir)
  search-limit  Default result limit for search (0 for the built-in 100)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	ConfigPath  string `json:"config_path"`
	DataPath    string `json:"data_path,omitempty"`
	IndexPath   string `json:"index_path,omitempty"`
	SearchLimit int    `json:"search_limit,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// Config keys.
const (
	KeyDataPath    = "data-path"
	KeyIndexPath   = "index-path"
	KeySearchLimit = "search-limit"
)

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if jsonOutput {
			return outputJSON(ConfigResponse{
				ConfigPath:  config.GlobalConfigPath(),
				DataPath:    cfg.DataPath,
				IndexPath:   cfg.IndexPath,
				SearchLimit: cfg.SearchLimit,
			})
		}
		fmt.Printf("config:       %s\n", config.GlobalConfigPath())
		fmt.Printf("data-path:    %s\n", cfg.DataPath)
		fmt.Printf("index-path:   %s\n", cfg.IndexPath)
		fmt.Printf("search-limit: %d\n", cfg.SearchLimit)
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, ok := configValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if jsonOutput {
			return outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		fmt.Println(value)
		return nil
	}

	// Two args: set value
	value := args[1]
	switch key {
	case KeyDataPath:
		cfg.DataPath = config.ExpandPath(value)
	case KeyIndexPath:
		cfg.IndexPath = config.ExpandPath(value)
	case KeySearchLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			exitWithError(ExitError, "search-limit must be a non-negative number, got %q", value)
		}
		cfg.SearchLimit = n
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := config.SaveGlobalConfig(cfg); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if jsonOutput {
		return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	fmt.Printf("Updated %s to %s\n", key, value)
	return nil
}

// configValue returns the display value of a normalized key.
func configValue(cfg *config.GlobalConfig, key string) (string, bool) {
	switch key {
	case KeyDataPath:
		return cfg.DataPath, true
	case KeyIndexPath:
		return cfg.IndexPath, true
	case KeySearchLimit:
		return strconv.Itoa(cfg.SearchLimit), true
	default:
		return "", false
	}
}

// normalizeKey converts key formats (data-path, data_path, DATA_PATH) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
