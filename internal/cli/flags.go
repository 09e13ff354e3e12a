package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagOutputDir     = "output-dir"
	FlagDirectory     = "directory"
	FlagConfig        = "config"
	FlagOverwrite     = "overwrite-if-exists"
	FlagKeepOnFailure = "keep-project-on-failure"
	FlagAcceptHooks   = "accept-hooks"
	FlagCheckout      = "checkout"
	FlagDryRun        = "dry-run"
	FlagReplay        = "replay"
	FlagNoInput       = "no-input"
	FlagVerbose       = "verbose"
	FlagNoColor       = "no-color"
	FlagQuiet         = "quiet"
	FlagDebug         = "debug"

	// Flag descriptions
	DescOutputDir     = "Directory the project is generated in (default from config, else .)"
	DescDirectory     = "Sub-directory of the template source that holds the template"
	DescConfig        = "Path to the user config file"
	DescOverwrite     = "Generate into the project directory even if it already exists"
	DescKeepOnFailure = "Keep the partially generated project when generation fails"
	DescAcceptHooks   = "Accept template hooks (hooks are not executed)"
	DescCheckout      = "Git branch, tag, or commit to check out"
	DescDryRun        = "Show what would be generated without writing"
	DescReplay        = "Re-use the context of a previous run (not supported)"
	DescNoInput       = "Do not prompt for input (prompting is never performed)"
	DescVerbose       = "Increase log verbosity (repeat for more)"
	DescNoColor       = "Disable colored output"
	DescQuiet         = "Suppress non-error output"
	DescDebug         = "Enable debug logging"
)
