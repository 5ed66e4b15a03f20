// Package file provides the TOML-backed configuration store. Settings
// live in a single config.toml; long-running surfaces can watch it for
// external edits.
package file
