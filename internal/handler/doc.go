// Package handler implements the HTTP handlers of the dashboard status API.
// It serves the most recent frame produced by the poller and the active
// server index published on the side channel.
package handler
