// Package utils holds input validation shared by the desktop API surfaces.
package utils
