package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/nsfs"
	"github.com/brettbedarf/nsfs/filesystem"
	"github.com/brettbedarf/nsfs/printer"
	"github.com/brettbedarf/nsfs/requests"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the university walkthrough",
	Long: `Build the university demo tree, list a few directories, show that
duplicate and orphaned creations are rejected, then print the whole tree.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fsys := filesystem.NewFS(cfg)
		defer fsys.Teardown()
		return runDemo(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize(), fsys)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoListings are the directories listed after the tree is built
var demoListings = []string{
	"/",
	"/academics",
	"/academics/courses/CS/CS101",
	"/users/student123",
}

func runDemo(out, errOut io.Writer, color bool, ns nsfs.Namespace) error {
	p := printer.New(out, color)
	perr := printer.New(errOut, color)

	res := requests.Apply(ns, requests.DemoManifest())
	for _, f := range res.Failures {
		perr.Error(f.Err)
	}

	for _, dir := range demoListings {
		if err := p.ListDirectory(ns, dir); err != nil {
			perr.Error(err)
		}
	}

	// Both of these are expected to fail
	if err := ns.CreateDirectory("/academics/courses"); err != nil {
		perr.Error(err)
	}
	if err := ns.CreateFile("/nonexistent/file.txt"); err != nil {
		perr.Error(err)
	}

	if err := p.Stat(ns, "/academics/courses/CS/CS101/syllabus_fall2024.pdf"); err != nil {
		fmt.Fprintln(out, "File not found.")
	}
	if _, err := ns.Resolve("/academics/nonexistent"); errors.Is(err, nsfs.ErrPathNotFound) {
		fmt.Fprintln(out, "Path '/academics/nonexistent' not found as expected.")
	}

	fmt.Fprintln(out, "\nFile System Tree:")
	return p.PrintTree(ns, nsfs.Separator)
}
