// Package config loads, validates and writes the kontrol configuration file.
//
// The file carries the paginator and sort dropdown settings of the demo
// program, its theme and its key binds. Its JSON schema is reflected from
// [Config] and checked before the file is decoded.
package config
