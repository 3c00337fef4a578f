package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/nsfs/internal/util"
)

var (
	listenAddr string
	mountPoint string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the namespace over HTTP",
	Long: `Serve the HTTP API. With --mount the same namespace is also mounted
with FUSE, so nodes created through either front end show up in both.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&mountPoint, "mount", "", "Also mount the namespace at this directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := newStore(cmd)
	if err != nil {
		return err
	}
	logger := util.GetLogger("main")

	if mountPoint != "" {
		if err := s.Serve(mountPoint); err != nil {
			return err
		}
		logger.Info().Str("mountpoint", mountPoint).Msg("Filesystem mounted successfully")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAPI(listenAddr)
	}()

	select {
	case err := <-errCh:
		s.Unmount() // nolint:errcheck
		s.Teardown()
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
