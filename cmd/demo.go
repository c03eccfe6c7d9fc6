package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taazafoods/taaza-cli/internal/demo"
)

var demoPort int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local fixture backend",
	Long: `Serves a canned catalog with in-memory sessions and carts on the same
wire contract as the real backend, so the client can be tried without
network access. Point taaza at it with base_url http://localhost:<port>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := demo.New(demo.Config{Port: demoPort})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoPort, "port", 8000, "port to listen on")
	rootCmd.AddCommand(demoCmd)
}
