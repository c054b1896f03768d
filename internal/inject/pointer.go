package inject

// Rect is a display in desktop coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) clamp(x, y int) (int, int) {
	maxX, maxY := r.X+r.Width-1, r.Y+r.Height-1
	return min(max(x, r.X), maxX), min(max(y, r.Y), maxY)
}

// Pointer tracks where relative motion has taken the cursor so moves can be
// kept on the display the cursor is on.
type Pointer struct {
	displays []Rect
	x, y     int
}

// NewPointer starts the cursor in the middle of the first display.
func NewPointer(displays []Rect) *Pointer {
	p := &Pointer{displays: displays}
	if len(displays) > 0 {
		d := displays[0]
		p.x, p.y = d.X+d.Width/2, d.Y+d.Height/2
	}
	return p
}

func (p *Pointer) Position() (int, int) {
	return p.x, p.y
}

// Move applies a relative motion and returns the motion that keeps the
// cursor inside the display it was on. A move that lands on another display
// is passed through unchanged. Without displays nothing is clamped.
func (p *Pointer) Move(dx, dy int) (int, int) {
	nx, ny := p.x+dx, p.y+dy
	from, to := -1, -1
	for i, d := range p.displays {
		if d.Contains(p.x, p.y) {
			from = i
		}
		if d.Contains(nx, ny) {
			to = i
		}
	}
	if to == -1 && from != -1 {
		nx, ny = p.displays[from].clamp(nx, ny)
	}
	dx, dy = nx-p.x, ny-p.y
	p.x, p.y = nx, ny
	return dx, dy
}
