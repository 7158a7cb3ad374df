// Package client is a Go client for the overlay REST API, used by
// overlayctl and by operators scripting desktops.
package client
