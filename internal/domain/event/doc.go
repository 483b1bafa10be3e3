// Package event defines the events routed from input drivers through the
// window manager to windows and widgets, and the token-addressed callback
// registry used for every subscription in the desktop.
package event
