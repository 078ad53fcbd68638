package draw

import (
	"image"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomz197/ping/internal/physics"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// pixel is one sub-pixel of the canvas. Unset pixels are not rendered.
type pixel struct {
	r, g, b uint8
	set     bool
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// All drawing methods take pixel coordinates; callers scale from logical arena
// coordinates through a Viewport first.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []pixel // Flat slice: [y * termWidth + x]
	offCol, offRow int     // Added to every cursor move when rendering

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte        // Scratch buffer for integer formatting
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	polygonBuf      []Point         // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
func NewCanvas(termWidth, termHeight int) *Canvas {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]pixel, subPixelHeight*termWidth),
	}
}

// Resize updates the canvas for new terminal dimensions.
// Returns true when the size actually changed.
func (c *Canvas) Resize(termWidth, termHeight int) bool {
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return false
	}
	subPixelHeight := termHeight * 2
	c.pixels = make([]pixel, subPixelHeight*termWidth)
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = subPixelHeight
	return true
}

// SetOffset shifts rendered output, for centering a clamped render area.
func (c *Canvas) SetOffset(col, row int) {
	c.offCol, c.offRow = col, row
}

// Width returns the canvas width in pixels (terminal columns).
func (c *Canvas) Width() int {
	return c.termWidth
}

// Height returns the canvas height in pixels (terminal rows * 2).
func (c *Canvas) Height() int {
	return c.subPixelHeight
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// IsSet reports whether the pixel at (x, y) has been drawn this frame.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x].set
}

// At returns the color at (x, y) and whether it is set.
func (c *Canvas) At(x, y int) (Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Color{}, false
	}
	p := c.pixels[y*c.termWidth+x]
	return RGB(p.r, p.g, p.b), p.set
}

// setPixel writes a pixel, blending with what is already there when the
// color is translucent.
func (c *Canvas) setPixel(x, y int, col Color) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || col.A <= 0 {
		return
	}
	p := &c.pixels[y*c.termWidth+x]
	if col.A < 1 {
		under := RGB(p.r, p.g, p.b)
		if !p.set {
			under = RGB(0, 0, 0)
		}
		col.Color = under.Color.BlendRgb(col.Color, col.A).Clamped()
	}
	p.r, p.g, p.b = col.RGB255()
	p.set = true
}

// Set sets a pixel using float coordinates.
func (c *Canvas) Set(x, y float64, col Color) {
	c.setPixel(int(math.Floor(x)), int(math.Floor(y)), col)
}

// FillRect fills a rectangle given in pixel coordinates.
func (c *Canvas) FillRect(r physics.Rect, col Color) {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.Right()))
	y1 := int(math.Round(r.Bottom()))
	if x1 == x0 && r.W > 0 {
		x1 = x0 + 1
	}
	if y1 == y0 && r.H > 0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// StrokeRect draws the outline of a rectangle.
func (c *Canvas) StrokeRect(r physics.Rect, col Color) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.Right()-1, r.Bottom()-1
	c.DrawLine(Point{x0, y0}, Point{x1, y0}, col)
	c.DrawLine(Point{x1, y0}, Point{x1, y1}, col)
	c.DrawLine(Point{x1, y1}, Point{x0, y1}, col)
	c.DrawLine(Point{x0, y1}, Point{x0, y0}, col)
}

// FillCircle fills a circle centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, radius float64, col Color) {
	if radius <= 0 {
		return
	}
	if radius < 0.75 {
		c.Set(cx, cy, col)
		return
	}
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		if dy*dy > r2 {
			continue
		}
		half := math.Sqrt(r2 - dy*dy)
		xStart := int(math.Round(cx - half))
		xEnd := int(math.Round(cx + half))
		for x := xStart; x < xEnd; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// StrokeCircle draws a circle outline using the midpoint algorithm.
func (c *Canvas) StrokeCircle(cx, cy, radius float64, col Color) {
	if radius <= 0 {
		return
	}
	ix, iy := int(math.Round(cx)), int(math.Round(cy))
	x := int(math.Round(radius))
	y := 0
	err := 1 - x
	for x >= y {
		c.setPixel(ix+x, iy+y, col)
		c.setPixel(ix+y, iy+x, col)
		c.setPixel(ix-y, iy+x, col)
		c.setPixel(ix-x, iy+y, col)
		c.setPixel(ix-x, iy-y, col)
		c.setPixel(ix-y, iy-x, col)
		c.setPixel(ix+y, iy-x, col)
		c.setPixel(ix+x, iy-y, col)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolyline draws connected line segments without closing the shape.
func (c *Canvas) DrawPolyline(points []Point, col Color) {
	for i := 0; i+1 < len(points); i++ {
		c.DrawLine(points[i], points[i+1], col)
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, col Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawImage samples img (nearest neighbour) into dst. Transparent source
// pixels are skipped; partially transparent ones are blended.
func (c *Canvas) DrawImage(img image.Image, dst physics.Rect) {
	if img == nil || dst.W <= 0 || dst.H <= 0 {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	x0, y0 := int(math.Round(dst.X)), int(math.Round(dst.Y))
	w, h := int(math.Round(dst.W)), int(math.Round(dst.H))
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*b.Dy()/h
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			r, g, bl, a := img.At(sx, sy).RGBA()
			if a == 0 {
				continue
			}
			// RGBA is alpha-premultiplied; undo before blending.
			col := RGB(uint8(r*0xff/a), uint8(g*0xff/a), uint8(bl*0xff/a)).Alpha(float64(a) / 0xffff)
			c.setPixel(x0+x, y0+y, col)
		}
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters and
// 24-bit color escapes. The upper half of a cell uses the foreground color,
// the lower half the background color.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 24)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if !top.set && !bottom.set {
				continue // Skip empty cells
			}

			c.moveCursor(col+1, row+1)
			switch {
			case top.set && bottom.set:
				if top == bottom {
					c.writeColor(38, top)
					c.renderBuf.WriteRune(BlockFull)
				} else {
					c.writeColor(38, top)
					c.writeColor(48, bottom)
					c.renderBuf.WriteRune(BlockUpperHalf)
				}
			case top.set:
				c.writeColor(38, top)
				c.renderBuf.WriteRune(BlockUpperHalf)
			default:
				c.writeColor(38, bottom)
				c.renderBuf.WriteRune(BlockLowerHalf)
			}
			c.renderBuf.WriteString("\033[0m")
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+c.offRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+c.offCol), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor emits a truecolor SGR sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, p pixel) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(p.r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(p.g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(p.b), 10))
	c.renderBuf.WriteByte('m')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
