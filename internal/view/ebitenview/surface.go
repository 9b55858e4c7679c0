package ebitenview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/neonfield/internal/draw"
	"github.com/tomz197/neonfield/internal/object"
)

const (
	lineWidth = 1.5
	glowRings = 6
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// surface paints entities onto an ebiten image. Logical units are pixels.
type surface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ object.Surface = (*surface)(nil)

func (s *surface) Polygon(points []draw.Point, stroke, fill color.RGBA) {
	if len(points) < 2 {
		return
	}
	if fill.A > 0 && len(points) >= 3 {
		s.fillPolygon(points, fill)
	}
	if stroke.A == 0 {
		return
	}
	for i := range points {
		s.Line(points[i], points[(i+1)%len(points)], stroke)
	}
}

func (s *surface) fillPolygon(points []draw.Point, fill color.RGBA) {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	r, g, b, a := float32(fill.R)/255, float32(fill.G)/255, float32(fill.B)/255, float32(fill.A)/255
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.EvenOdd,
		AntiAlias: true,
	})
}

func (s *surface) Line(p1, p2 draw.Point, clr color.RGBA) {
	vector.StrokeLine(s.dst, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), lineWidth, toNRGBA(clr), true)
}

func (s *surface) Dot(center draw.Point, radius float64, clr color.RGBA) {
	if radius < 0.5 {
		radius = 0.5
	}
	vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), toNRGBA(clr), true)
}

// Glow approximates a radial gradient with stacked translucent discs.
func (s *surface) Glow(center draw.Point, radius float64, clr color.RGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	ring := clr
	ring.A = uint8(max(1, int(clr.A)/glowRings))
	for i := glowRings; i >= 1; i-- {
		r := radius * float64(i) / glowRings
		vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(r), toNRGBA(ring), true)
	}
}

// toNRGBA reads the palette's RGBA values as straight alpha, which is how
// entities build them.
func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
