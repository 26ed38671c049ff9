// Package cli implements the command-line interface for xoso-stats.
//
// The root command resolves configuration (defaults, TOML file, .env and
// XOSO_* variables, then flags), installs the logger and builds the dataset
// service. Subcommands print the merged table, the tracking matrix with its
// cycle priorities, gan statistics, streaks, frequency windows and pair
// lookups as lipgloss tables or indented JSON, or serve them over HTTP.
package cli
