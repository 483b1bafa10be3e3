// Package widget implements the toolkit hosted inside windows: a flex
// Layout container and the Text, Button, Checkbox and TextInput leaves.
//
// A Layout computes its children's rectangles whenever it is resized or
// drawn. Pointer events are delivered to the child under the pointer in
// that child's own coordinates; a child that saw a press or hover also
// sees the matching release or move that leaves it. Keys, wheel steps and
// ticks are offered to children in order until one consumes them.
package widget
