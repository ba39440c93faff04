// Package cli implements the tldrc commands. Only resolved pages go to
// stdout; all progress, warnings and errors go to stderr through the
// logger, so output stays pipeable.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tldrc/internal/logger"
)

var (
	configPath string
	languages  []string
	platform   string
	offline    bool
	quiet      bool
	verbose    bool
	noColor    bool
)

// NewRootCmd creates the tldrc root command. Invoked with a page name it
// resolves and prints the page; management operations are subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tldrc [page]...",
		Short: "Official tldr client written in Go",
		Long: `tldrc is a client for tldr-pages: simplified, community-maintained
man pages with practical examples. Pages are cached locally and kept in
sync with the official release archives.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init(logger.Options{
				Level:   logLevel(),
				Quiet:   quiet,
				NoColor: noColor,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// Multi-word invocations like `tldrc git checkout` name the
			// page git-checkout.
			name := strings.ToLower(strings.Join(args, "-"))
			return runPage(cmd, name)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print only pages and errors")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&offline, "offline", false, "never touch the network")

	cmd.Flags().StringArrayVarP(&languages, "language", "L", nil, "preferred page language (repeatable, overrides the environment)")
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "platform to search (default: the current one)")

	cmd.AddCommand(
		NewUpdateCmd(),
		NewListCmd(),
		NewInfoCmd(),
		NewCleanCmd(),
		NewLanguagesCmd(),
		NewPlatformsCmd(),
		NewConfigCmd(),
		NewVersionCmd(),
	)

	return cmd
}

func logLevel() string {
	if verbose {
		return "debug"
	}
	return ""
}
