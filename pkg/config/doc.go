// Package config loads typed configuration structs from environment
// variables (with optional .env file support for development).
//
// Struct fields are mapped with `env` tags from github.com/caarlos0/env;
// see pkg/pg and pkg/redis for the configuration structs used by the
// storage and transport adapters.
package config
