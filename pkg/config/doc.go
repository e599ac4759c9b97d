// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration is declared as struct tags understood by
// github.com/caarlos0/env and loaded with Load or MustLoad. Every package in
// this module that needs configuration defines its own Config struct next to
// the code that consumes it; this package only provides the loading mechanics.
package config
