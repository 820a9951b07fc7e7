// Package httpserver runs the status API listener with validated addresses
// and graceful shutdown.
package httpserver
