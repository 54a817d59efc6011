package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/config"
	"github.com/jonathan/renovation-quoter/internal/server"
	"github.com/jonathan/renovation-quoter/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that quotes transcripts, records outcomes and searches past quotes.`,
	RunE:  runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, cfg, logger, err := openServices(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	serverCfg := server.Config{
		Port:      servePort,
		Services:  svc,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logger,
	}

	if cfg.TokensEnabled() {
		jwtCfg, err := cfg.JWT()
		if err != nil {
			return err
		}
		operator, err := config.NewOperatorConfig()
		if err != nil {
			return err
		}
		serverCfg.JWT = jwtCfg
		serverCfg.Operator = operator
	} else {
		logger.Warn("JWT_SECRET not set, feedback recording is unauthenticated")
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
