// Package terminal renders the desktop into a character terminal through
// tcell. Logical pixels are folded into cells, so the picture is coarse,
// but geometry and hit-testing stay in the same coordinate space as every
// other surface.
package terminal
