// Package widget is a small retained-mode toolkit for the simulator screen.
//
// Every control implements [Widget]. The embeddable [Base] supplies
// geometry, colours and no-op event handlers, so a variant only overrides
// what it reacts to:
//
//   - [Button] and [ImageButton]: debounced clicks, greyed state
//   - [Slider]: linear value from the pointer position
//   - [Dropdown]: option list with change notification
//   - [TextBox]: filtered text entry with exclusive focus
//   - [Checkbox], [ColorSwatch], [Label]
//
// [Container] and [Menu] group widgets and translate them by their own
// offset once, when added. [Root] routes input to the top-level widgets and
// to the active menu.
//
// Drawing goes through the [Surface] interface so the same tree renders
// into a raylib window, a braille terminal canvas or an image file.
package widget
