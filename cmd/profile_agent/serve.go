package main

import (
	"fmt"

	"github.com/jonathan/student-profile/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort   int
	databaseURL string
	corsOrigin  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that stores submitted profiles and serves them back.
Requires DATABASE_URL (or --database-url) and JWT_SECRET.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 5000)")
	serveCmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (env DATABASE_URL)")
	serveCmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "Access-Control-Allow-Origin value (env CORS_ORIGIN)")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig applies the serve flags over the resolved configuration.
func serverConfig() (server.Config, error) {
	sc := server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		CORSOrigin:  cfg.CORSOrigin,
	}
	if servePort != 0 {
		sc.Port = servePort
	}
	if databaseURL != "" {
		sc.DatabaseURL = databaseURL
	}
	if corsOrigin != "" {
		sc.CORSOrigin = corsOrigin
	}
	if sc.DatabaseURL == "" {
		return server.Config{}, fmt.Errorf("DATABASE_URL environment variable or --database-url is required")
	}
	return sc, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	sc, err := serverConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(cmd.Context(), sc, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Debug("server configured", zap.Int("port", sc.Port), zap.String("cors_origin", sc.CORSOrigin))
	return srv.Start()
}
