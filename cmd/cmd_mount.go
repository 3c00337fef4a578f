package main

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/nsfs/internal/util"
)

var umount bool

var mountCmd = &cobra.Command{
	Use:   "mount <mountpoint>",
	Short: "Mount the namespace with FUSE",
	Long: `Mount the namespace read-only for content. Directories and empty files
can be created through the mount; nothing can be removed or written.`,
	Args: cobra.ExactArgs(1),
	RunE: runMount,
}

func init() {
	mountCmd.Flags().BoolVarP(&umount, "umount", "u", false,
		"Unmount the fs first if needed before mounting again. Useful for debuggers that don't exit properly.")
	rootCmd.AddCommand(mountCmd)
}

func runMount(cmd *cobra.Command, args []string) error {
	mnt := args[0]
	s, err := newStore(cmd)
	if err != nil {
		return err
	}
	logger := util.GetLogger("main")

	if umount {
		// we ignore error here if not already mounted
		exec.Command("fusermount", "-u", mnt).Run() // nolint:errcheck
	}

	if err := s.Serve(mnt); err != nil {
		return err
	}
	logger.Info().Str("mountpoint", mnt).Msg("Filesystem mounted successfully")

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")

	if err := s.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
		return err
	}
	s.Teardown()
	logger.Info().Msg("Filesystem unmounted successfully")
	return nil
}
