// Package config loads the dashboard configuration from YAML files and
// environment variables: the metrics endpoint and poll cadence, the status
// API address, event log capacity, logging and UI mode.
package config
