// Command overlayctl drives a running overlay service from the terminal:
// create desktops, open preset windows, move them and toggle the modal gate.
package main
