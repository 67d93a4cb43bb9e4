// Package config loads the prgconv TOML configuration file.
//
// Values missing from the file keep their defaults, see Default. Load expands
// "~" in paths and validates the result.
package config
