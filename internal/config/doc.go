// Package config loads the starcat configuration.
//
// # Configuration Sources
//
// Values are resolved in order, later sources winning:
//
//  1. Built-in defaults
//  2. ~/.config/starcat/config.toml (or the path given with -config)
//  3. Environment variables
//
// A missing config file is not an error; the defaults point at a catalog
// API on 127.0.0.1:8640.
//
// # File Format
//
//	api_url = "catalog.example.com"
//	request_timeout_seconds = 10
//	page_size = 25
//
// # Environment Variables
//
//   - STARCAT_API_URL
//   - STARCAT_TIMEOUT_SECONDS
//   - STARCAT_PAGE_SIZE
//
// # Validation
//
// page_size must be one of 5, 10, 25, or 100 (the widths the UI offers);
// anything else fails Load. An unset or non-positive timeout falls back to
// the default, and a bare host:port api_url is accepted (the catalog client
// assumes http).
package config
