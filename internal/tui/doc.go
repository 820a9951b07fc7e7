// Package tui renders poller frames in the terminal with bubbletea.
//
// The model never reaches into the poller's state. It draws whatever frame it
// was last sent, and a separate pulse ticker animates the flow line towards
// the server last published on the active slot.
package tui
