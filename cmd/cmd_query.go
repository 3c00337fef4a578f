package main

import (
	"github.com/spf13/cobra"

	"github.com/brettbedarf/nsfs"
	"github.com/brettbedarf/nsfs/printer"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the tree below path (default /)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := nsfs.Separator
		if len(args) == 1 {
			path = args[0]
		}
		return query(cmd, func(p *printer.Printer, ns nsfs.Namespace) error {
			return p.PrintTree(ns, path)
		})
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls <path>",
	Short: "List the immediate children of a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return query(cmd, func(p *printer.Printer, ns nsfs.Namespace) error {
			return p.ListDirectory(ns, args[0])
		})
	},
}

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show the node at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return query(cmd, func(p *printer.Printer, ns nsfs.Namespace) error {
			return p.Stat(ns, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(treeCmd, lsCmd, statCmd)
}

// query loads the store, runs fn against it and tears the store down.
func query(cmd *cobra.Command, fn func(*printer.Printer, nsfs.Namespace) error) error {
	s, err := newStore(cmd)
	if err != nil {
		return err
	}
	defer s.Teardown()
	return fn(printer.New(cmd.OutOrStdout(), colorize()), s)
}
