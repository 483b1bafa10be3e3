package types

// WindowInfo is a snapshot of a window taken on the loop goroutine
type WindowInfo struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Visible  bool   `json:"visible"`
	Focused  bool   `json:"focused"`
	Dragging bool   `json:"dragging"`
	// Z is the stack index, 0 at the bottom.
	Z int `json:"z"`
}

// WindowList lists windows bottom to top
type WindowList struct {
	Windows []WindowInfo `json:"windows"`
	Focused *int         `json:"focused"`
}

// CreateWindowRequest creates a window
type CreateWindowRequest struct {
	Title  string `json:"title" binding:"required"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
}

// UpdateWindowRequest changes any subset of a window's attributes
type UpdateWindowRequest struct {
	Title   *string `json:"title,omitempty"`
	X       *int    `json:"x,omitempty"`
	Y       *int    `json:"y,omitempty"`
	Width   *int    `json:"width,omitempty"`
	Height  *int    `json:"height,omitempty"`
	Visible *bool   `json:"visible,omitempty"`
}

// Health summarises a running desktop
type Health struct {
	Status  string `json:"status"`
	Session string `json:"session"`
	Running bool   `json:"running"`
	Windows int    `json:"windows"`
	Frames  uint64 `json:"frames"`
}
