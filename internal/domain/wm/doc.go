// Package wm is the window manager: window lifecycle, focus, z-order and
// routing of raw pointer and keyboard input to windows and their widgets.
//
// Z-order is the order of the window stack, bottom first. Focusing a
// window moves it to the top. Pointer presses go to the topmost visible
// window under the pointer only; releases go to every visible window under
// it. Wheel steps and keys go to the focused window.
package wm
