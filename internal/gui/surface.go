package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/widget"
)

// Font is a widget font drawn with a raylib face at a fixed pixel size.
type Font struct {
	face rl.Font
	px   float32
}

func (f *Font) Measure(text string) (float64, float64) {
	v := rl.MeasureTextEx(f.face, text, f.px, 1)
	return float64(v.X), float64(v.Y)
}

func (f *Font) Size() float64 { return float64(f.px) }

// Surface draws widgets with raylib calls. It is only valid between
// BeginFrame and EndFrame.
type Surface struct {
	win *Window
}

func vec(p geom.Point) rl.Vector2 { return rl.NewVector2(float32(p.X), float32(p.Y)) }

func rect(r geom.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

func (s *Surface) Clear(c color.RGBA) { rl.ClearBackground(c) }

func (s *Surface) FillRect(r geom.Rect, c color.RGBA) { rl.DrawRectangleRec(rect(r), c) }

func (s *Surface) StrokeRect(r geom.Rect, c color.RGBA, thickness float64) {
	rl.DrawRectangleLinesEx(rect(r), float32(thickness), c)
}

// FillPolygon fans out from the first point, so pts must be convex.
func (s *Surface) FillPolygon(pts []geom.Point, c color.RGBA) {
	for i := 1; i+1 < len(pts); i++ {
		a, b, d := vec(pts[0]), vec(pts[i]), vec(pts[i+1])
		// raylib culls clockwise triangles.
		if (b.X-a.X)*(d.Y-a.Y)-(b.Y-a.Y)*(d.X-a.X) > 0 {
			b, d = d, b
		}
		rl.DrawTriangle(a, b, d, c)
	}
}

func (s *Surface) FillCircle(center geom.Point, radius float64, c color.RGBA) {
	rl.DrawCircleV(vec(center), float32(radius), c)
}

func (s *Surface) StrokeCircle(center geom.Point, radius float64, c color.RGBA, thickness float64) {
	rl.DrawRing(vec(center), float32(radius-thickness), float32(radius), 0, 360, 36, c)
}

func (s *Surface) Line(a, b geom.Point, c color.RGBA, thickness float64) {
	rl.DrawLineEx(vec(a), vec(b), float32(thickness), c)
}

func (s *Surface) Text(text string, at geom.Point, f widget.Font, c color.RGBA) {
	px := float32(20)
	if f != nil {
		px = float32(f.Size())
	}
	rl.DrawTextEx(s.win.font, text, vec(at), px, 1, c)
}

func (s *Surface) DrawImage(img *widget.Image, at geom.Point) {
	rl.DrawTexture(s.win.texture(img), int32(at.X), int32(at.Y), rl.White)
}
