// Package config provides configuration loading, merging, and validation
// facilities for the sync server.
//
// Configuration is assembled from multiple sources and merged with mergo, so
// a field keeps the value of the first source that sets it:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Defaults
//
// The main entry point is [GetStructuredConfig].
package config
