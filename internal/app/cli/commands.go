package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandOpen CommandType = iota
	CommandRecent
	CommandRecentClear
	CommandExport
	CommandLocate
	CommandVersion
	CommandHelp
)

// Options contains the parsed command-line arguments
type Options struct {
	Type CommandType

	// Open
	Paths    []string
	Filters  []string
	NoUI     bool
	Follow   bool
	Interval time.Duration

	// Export
	ExportPath string

	// Locate
	LocatePath    string
	LocateText    string
	LocateContext int
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandOpen,
	}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildRecentCommand(result),
		buildExportCommand(result),
		buildLocateCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	if result.Type == CommandOpen {
		expanded, err := ExpandPaths(result.Paths)
		if err != nil {
			return nil, err
		}

		result.Paths = expanded
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mocha [files...]",
		Short: "A terminal log viewer that merges, filters and tails log files",
		Long: `Mocha opens one or more log files, merges them into a single
time-ordered stream and lets you filter, select and tail the result.`,
		// Positional args are file paths, not subcommands.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandOpen
			result.Paths = args
		},
	}

	cmd.PersistentFlags().BoolVar(&result.NoUI, "no-ui", false, "Stream to stdout instead of the TUI")
	cmd.Flags().BoolVarP(&result.Follow, "follow", "f", false, "Watch files for new entries")
	cmd.Flags().StringArrayVarP(&result.Filters, "filter", "F", nil, "Start with a filter (text, /regex/ or -exclude)")
	cmd.Flags().DurationVar(&result.Interval, "interval", 0, "Poll interval when following (e.g. 500ms)")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildRecentCommand creates the recent subcommand
func buildRecentCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recent",
		Aliases: []string{"r"},
		Short:   "List recently opened files",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRecent
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the recent files list",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRecentClear
		},
	})

	return cmd
}

// buildExportCommand creates the export subcommand
func buildExportCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <output> <files...>",
		Aliases: []string{"e"},
		Short:   "Write the merged, filtered view of files to an output file",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expanded, err := ExpandPaths(args[1:])
			if err != nil {
				return err
			}

			result.Type = CommandExport
			result.ExportPath = args[0]
			result.Paths = expanded

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&result.Filters, "filter", "F", nil, "Apply a filter before exporting")

	return cmd
}

// buildLocateCommand creates the locate subcommand
func buildLocateCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate <file> <text>",
		Short: "Find a line in a file and print it with surrounding context",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandLocate
			result.LocatePath = args[0]
			result.LocateText = args[1]
		},
	}

	cmd.Flags().IntVarP(&result.LocateContext, "context", "C", 3, "Context lines around the match")

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}
