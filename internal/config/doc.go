// Package config loads run configuration for the tapevm CLI.
//
// A configuration file is either CUE (.cue) or TOML (.toml). Both formats
// are checked against the same CUE definition, #Config, embedded from
// schema.cue:
//
//	max_steps:        int >= 0, 0 means unlimited
//	strict:           reject non-opcode program bytes
//	encoding:         "raw" or "latin1"
//	db:               run history database path
//	trailing_newline: print a newline after program output
//
// Every field is optional. Fields absent from the file keep the values
// returned by Default. Unknown fields are rejected so typos surface early.
package config
