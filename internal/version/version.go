// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Bodies table, rise/set events, summary and closest subcommands, Prometheus metrics
// 0.2.0 - HYG catalogue and asterism files, star colours from colour index
// 0.1.0 - Initial release: Sun, Moon and planet models, stereographic sky view
