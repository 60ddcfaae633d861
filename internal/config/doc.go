// Package config provides configuration structures and utilities for
// descheck. It defines the options controlling the project scan, the layout
// template location, the report format, and the run-history database.
package config
