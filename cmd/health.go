package cmd

import (
	"context"
	"log"

	"github.com/Aditya-Mahlawat/resume-screener/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the screening service is up",
	Run: func(_ *cobra.Command, _ []string) {
		health()
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func health() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	token, err := resolveToken(config)
	if err != nil {
		zlog.Fatal("loading service token", zap.Error(err))
	}

	client := newClient(zlog, config, token)

	status, err := client.Health(ctx)
	if err != nil {
		zlog.Fatal("screening service is unreachable",
			zap.String(logger.FieldEndpoint, client.BaseURL),
			zap.Error(err),
		)
	}

	zlog.Info("screening service is up",
		zap.String(logger.FieldEndpoint, client.BaseURL),
		zap.String("status", status.Status),
		zap.String("message", status.Message),
	)
}
