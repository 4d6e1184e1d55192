// Package config loads, normalizes, and validates matchlock configuration.
//
// Configuration is TOML with a small number of sections: paths, library,
// matching, and logging. Load resolves the file location (explicit flag,
// ~/.config/matchlock/config.toml, then ./matchlock.toml), applies defaults
// for anything unset, expands ~ in path fields, and validates the result.
package config
