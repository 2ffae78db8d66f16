package main

import (
	"context"
	"os"

	"thegame/internal/config"
	"thegame/internal/log"

	"github.com/spf13/cobra"
)

// load config -> start metrics -> serve websocket rooms

var configFile string

var rootCmd = &cobra.Command{
	Use:   "thegame",
	Short: "The Game standalone WebSocket server",
	Long:  `Standalone WebSocket server for The Game, a cooperative card game for 2 to 6 players.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			log.Fatal("config error: %v", err)
		}
		log.InitLog(cfg.App.Name, cfg.Log.Level)
		log.Debug("config: %+v", *cfg)

		if cfg.Metrics.Addr != "" {
			go func() {
				log.Info("serving metrics, URL: http://%s/debug/statsviz/", cfg.Metrics.Addr)
				if err := serveMetrics(cfg.Metrics.Addr); err != nil {
					log.Error("metrics server: %v", err)
				}
			}()
		}

		if err := Run(context.Background(), cfg); err != nil {
			log.Error("server stopped: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
