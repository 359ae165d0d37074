package geometry

import "math"

// Orientation selects where the master tile sits.
type Orientation int

const (
	// Vertical puts the master tile on the left and stacks the rest top to bottom.
	Vertical Orientation = iota
	// Horizontal puts the master tile on top and lines the rest up left to right.
	Horizontal
)

// DefaultMasterRatio is used when Options.MasterRatio is outside (0, 1).
const DefaultMasterRatio = 0.5

// Options configures the master/stack split.
type Options struct {
	MasterRatio float64
	Gutter      int
	Orientation Orientation
}

// Span is a one-dimensional segment produced by SplitEven.
type Span struct {
	Offset int
	Size   int
}

// SplitEven divides total into parts segments separated by gutter. Leftover
// units go to the earliest segments. When the gutters alone would not fit,
// they are dropped so the segments still never overlap.
func SplitEven(total, parts, gutter int) []Span {
	if parts < 1 {
		return nil
	}
	if total < 0 {
		total = 0
	}
	if gutter < 0 || total-gutter*(parts-1) < 0 {
		gutter = 0
	}
	usable := total - gutter*(parts-1)
	base, extra := usable/parts, usable%parts

	spans := make([]Span, parts)
	off := 0
	for i := range spans {
		size := base
		if i < extra {
			size++
		}
		spans[i] = Span{Offset: off, Size: size}
		off += size + gutter
	}
	return spans
}

// Tile lays out n tiles inside bounds. The first tile takes the master
// region, the rest split the remainder evenly, much like a dynamic tiling
// window manager. n is clamped to at least 1 since the home tile always
// exists.
func Tile(n int, bounds Rect, opts Options) []Rect {
	if n < 1 {
		n = 1
	}
	if n == 1 {
		return []Rect{bounds}
	}
	if opts.Orientation == Horizontal {
		rects := masterStack(n, bounds.transpose(), opts)
		for i := range rects {
			rects[i] = rects[i].transpose()
		}
		return rects
	}
	return masterStack(n, bounds, opts)
}

func masterStack(n int, b Rect, opts Options) []Rect {
	ratio := opts.MasterRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultMasterRatio
	}
	gutter := max(opts.Gutter, 0)

	avail := b.Width - gutter
	if avail < 2 {
		// Too narrow for two columns: stack everything.
		rects := make([]Rect, 0, n)
		for _, s := range SplitEven(b.Height, n, gutter) {
			rects = append(rects, Rect{X: b.X, Y: b.Y + s.Offset, Width: b.Width, Height: s.Size})
		}
		return rects
	}

	masterW := int(math.Round(float64(avail) * ratio))
	masterW = min(max(masterW, 1), avail-1)
	stackX := b.X + masterW + gutter
	stackW := avail - masterW

	rects := make([]Rect, 0, n)
	rects = append(rects, Rect{X: b.X, Y: b.Y, Width: masterW, Height: b.Height})
	for _, s := range SplitEven(b.Height, n-1, gutter) {
		rects = append(rects, Rect{X: stackX, Y: b.Y + s.Offset, Width: stackW, Height: s.Size})
	}
	return rects
}
