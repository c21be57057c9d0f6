// Package config holds potato's settings.
//
// Settings are a nested map addressed by dotted paths ("log.level",
// "styles.h1.bold"). Load builds the map from three sources, later ones
// winning:
//
//  1. Built-in defaults
//  2. The config file, TOML or YAML by extension
//  3. POTATO_* environment variables
//
// Typed section accessors (Log, View, Styles, Host) return snapshot
// structs. A value of the wrong type falls back to the default and is
// recorded; ConfigErrors reports what was ignored.
//
// A minimal TOML file:
//
//	[log]
//	level = "debug"
//
//	[view]
//	wrap = "word-char"
//	foreground = "#d0d0d0"
//
//	[styles.h1]
//	foreground = "#ffaf00"
//	bold = true
//
//	[host]
//	populateDelay = "1s"
//	watchFile = "notes.txt"
package config
