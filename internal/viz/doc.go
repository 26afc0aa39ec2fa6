// Package viz renders the simulator into a terminal.
//
// [Canvas] is a braille dot grid: every character cell holds 2x4 dots.
// [Surface] draws the scene onto a canvas, scaling window pixels down to
// dots, keeping one colour per cell and overlaying text as plain runes.
// Styles and themes for the surrounding terminal panels live here too.
package viz
