// Package config provides centralized configuration management for the
// fund analyzer. It handles loading configuration from multiple sources,
// validation, and resolved filesystem paths for the rest of the pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. An optional YAML configuration file
//	3. Built-in defaults (lowest priority)
//
// Environment variables use the FUND prefix with underscore-separated
// section names:
//
//	FUND_LOGGING_LEVEL=debug
//	FUND_ANALYSIS_UNIVERSE=Europe
//	FUND_PATHS_REPORTS_DIR=/var/reports
//
// The file location can be passed explicitly to Load; otherwise
// config.yaml and config.yml are tried next to the working directory.
//
// # Paths
//
// GetPaths resolves the configured directories against a base directory
// (the working directory by default) and exposes the well-known report
// file locations. Callers create the directory tree up front with
// EnsureDirectories so later writes only deal with file errors.
//
// Example usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	paths, err := config.GetPaths(cfg.Paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := paths.EnsureDirectories(); err != nil {
//		log.Fatal(err)
//	}
package config
