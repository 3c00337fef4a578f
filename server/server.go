package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/labstack/echo/v4"

	"github.com/brettbedarf/nsfs/api"
	"github.com/brettbedarf/nsfs/config"
	"github.com/brettbedarf/nsfs/filesystem"
	"github.com/brettbedarf/nsfs/fusefs"
	"github.com/brettbedarf/nsfs/internal/util"
)

// NSFS contains the tree store and the front ends serving it: a FUSE mount
// and an HTTP API. Both share the one store.
type NSFS struct {
	*filesystem.FileSystem
	cfg  *config.Config
	fuse *fuse.Server
	http *echo.Echo
}

// New creates an NSFS instance given your config.
func New(cfg *config.Config) *NSFS {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	fsys := filesystem.NewFS(cfg)
	return &NSFS{
		FileSystem: fsys,
		cfg:        cfg,
		http:       api.SetupRouter(api.NewHandler(fsys)),
	}
}

// Serve mounts and serves the filesystem at the given mountPoint.
// It returns once the mount is ready.
func (s *NSFS) Serve(mountPoint string) error {
	logger := util.GetLogger("Server.Serve")
	opts := s.cfg.MountOptions
	attrTimeout := seconds(s.cfg.AttrTimeout)
	entryTimeout := seconds(s.cfg.EntryTimeout)

	srv, err := fs.Mount(mountPoint, fusefs.NewRoot(s.FileSystem), &fs.Options{
		MountOptions: fuse.MountOptions{
			Name:   opts.Name,
			FsName: opts.FsName,
			Debug:  opts.Debug || s.cfg.LogLvl == util.TraceLevel,
			Logger: util.NewLogLogger("FuseServer", util.TraceLevel),
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
	})
	if err != nil {
		return err
	}
	// fs.Mount has already waited for the kernel handshake
	s.fuse = srv
	logger.Info().Str("mnt", mountPoint).Msg("Mounted")
	return nil
}

// ServeAsync runs Serve in the background and reports its result on the
// returned channel.
func (s *NSFS) ServeAsync(mountPoint string) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- s.Serve(mountPoint)
		close(done)
	}()

	return done
}

// Wait blocks until the filesystem is unmounted.
func (s *NSFS) Wait() {
	if s.fuse != nil {
		s.fuse.Wait()
	}
}

// Unmount cleanly unmounts the filesystem.
func (s *NSFS) Unmount() error {
	if s.fuse == nil {
		return nil
	}
	return s.fuse.Unmount()
}

// Handler returns the HTTP API handler.
func (s *NSFS) Handler() http.Handler {
	return s.http
}

// ListenAPI serves the HTTP API on addr, or the configured ListenAddr when
// addr is empty. It blocks until Shutdown is called.
func (s *NSFS) ListenAPI(addr string) error {
	if addr == "" {
		addr = s.cfg.ListenAddr
	}
	logger := util.GetLogger("Server.ListenAPI")
	logger.Info().Str("addr", addr).Msg("HTTP API listening")

	if err := s.http.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP API, unmounts the filesystem and tears down the store.
func (s *NSFS) Shutdown(ctx context.Context) error {
	errs := []error{s.http.Shutdown(ctx), s.Unmount()}
	s.Teardown()
	return errors.Join(errs...)
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
