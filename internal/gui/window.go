// Package gui shows the scene in a raylib window.
package gui

import (
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/photosim/internal/config"
	"github.com/san-kum/photosim/internal/widget"
)

// FontPath is tried before raylib's built-in font.
var FontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// Window is a scene front end. raylib paces it through SetTargetFPS, so
// EndFrame blocks until the next frame is due.
type Window struct {
	font     rl.Font
	surface  *Surface
	textures map[*widget.Image]rl.Texture2D
	shift    bool
}

// Open creates the window. Close must be called from the same goroutine.
func Open(cfg *config.Config, logger *log.Logger) *Window {
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.TickRate))
	rl.SetExitKey(0)

	w := &Window{
		font:     loadFont(logger),
		textures: make(map[*widget.Image]rl.Texture2D),
	}
	w.surface = &Surface{win: w}
	return w
}

func loadFont(logger *log.Logger) rl.Font {
	font := rl.LoadFontEx(FontPath, 64, nil, 0)
	if font.Texture.ID == 0 {
		logger.Warn("font unavailable, using raylib default", "path", FontPath)
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Font returns a widget font of px pixels measured with the window's face.
func (w *Window) Font(px int) *Font {
	return &Font{face: w.font, px: float32(px)}
}

func (w *Window) Paced() bool { return true }

func (w *Window) Poll() widget.Input {
	m := rl.GetMousePosition()
	in := widget.Input{}
	in.Pointer.X, in.Pointer.Y = float64(m.X), float64(m.Y)

	if rl.WindowShouldClose() {
		in.Events = append(in.Events, widget.Event{Kind: widget.Quit})
		return in
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		in.Events = append(in.Events, widget.Event{Kind: widget.MouseDown, X: in.Pointer.X, Y: in.Pointer.Y})
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		in.Events = append(in.Events, widget.Event{Kind: widget.MouseUp, X: in.Pointer.X, Y: in.Pointer.Y})
	}

	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if key, ok := mapKey(k); ok {
			in.Events = append(in.Events, widget.Event{Kind: widget.KeyDown, Key: key})
		}
	}
	if w.shift && !rl.IsKeyDown(rl.KeyLeftShift) && !rl.IsKeyDown(rl.KeyRightShift) {
		in.Events = append(in.Events, widget.Event{Kind: widget.KeyUp, Key: widget.Key{Code: widget.KeyShift}})
	}
	w.shift = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	return in
}

func (w *Window) BeginFrame() widget.Surface {
	rl.BeginDrawing()
	return w.surface
}

func (w *Window) EndFrame() error {
	rl.EndDrawing()
	return nil
}

func (w *Window) Close() {
	for _, tex := range w.textures {
		rl.UnloadTexture(tex)
	}
	if w.font.Texture.ID != rl.GetFontDefault().Texture.ID {
		rl.UnloadFont(w.font)
	}
	rl.CloseWindow()
}

func (w *Window) texture(img *widget.Image) rl.Texture2D {
	if tex, ok := w.textures[img]; ok {
		return tex
	}
	tex := rl.LoadTextureFromImage(rl.NewImageFromImage(img.Data))
	w.textures[img] = tex
	return tex
}

