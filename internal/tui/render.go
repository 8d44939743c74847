package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// previewVisible reports whether the main area shows the braille preview.
func (m Model) previewVisible() bool {
	return m.preview && !m.showScript && !m.showGroups && !m.pasteMode && !m.heightMode
}

// mapRect returns the origin and size of the main area. It must match the
// layout built by View.
func (m Model) mapRect() (x, y, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	headerHeight := 2
	footerHeight := 2
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, max(10, m.width)-sw-1)
	x = 0
	if m.showSidebar {
		x = sw + 1
	}
	return x, headerHeight, w, h
}

// cellToWorld converts a preview cell back to drawing units using bbox,
// zoom and pan.
func (m Model) cellToWorld(cx, cy, w, h int) (float64, float64, bool) {
	bb := m.data.BBox
	if !bb.Valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return bb.MinX + nx*bb.Width(), bb.MinY + ny*bb.Height(), true
}

func (m Model) renderPreview(w, h int) string {
	br := newBrailleBuf(w, h)

	// Polygons: even-odd scanline fill of the outer ring, then edges
	if m.showPolys {
		for _, poly := range m.data.Polygons {
			var rings [][][2]int
			for _, ring := range poly {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					rings = append(rings, sm)
				}
			}
			if len(rings) == 0 {
				continue
			}
			br.fillRing(rings[0])
			for _, r := range rings {
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	if m.showLines {
		for _, ls := range m.data.Lines {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}

	// points get a 2x2 dot so single vertices stay visible
	if m.showPoints {
		for _, p := range m.data.Points {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			br.setPixel(mx, my)
			br.setPixel(mx+1, my)
			br.setPixel(mx, my+1)
			br.setPixel(mx+1, my+1)
		}
	}

	lines := br.toLines()

	// Hover highlight: an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(hoverFg).Render("◯")
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// fillRing fills a closed ring on the microgrid with the even-odd rule.
func (b *brailleBuf) fillRing(ring [][2]int) {
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge
				continue
			}
			y0, y1 := a[1], c[1]
			x0, x1 := a[0], c[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// screenXYMicro maps drawing units into a 2x4 microgrid per cell for
// braille rendering.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	bb := m.data.BBox
	if !bb.Valid() {
		return 0, 0, false
	}
	nx := (x - bb.MinX) / bb.Width()
	ny := (y - bb.MinY) / bb.Height()
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps drawing units to cell coordinates considering zoom and pan.
func (m Model) screenXY(x, y float64, w, h int) (int, int, bool) {
	bb := m.data.BBox
	if !bb.Valid() {
		return 0, 0, false
	}
	nx := (x - bb.MinX) / bb.Width()
	ny := (y - bb.MinY) / bb.Height()
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}
