package postprocess

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/swdee/go-depthfuse/postprocess/result"
	"gonum.org/v1/gonum/mat"
)

// Compositor combines a normalized heatmap grid with the detected objects of
// the same image.  It produces the overlay cells to render and scores each
// object by the overlay weight that falls within its bounding box.
type Compositor struct {
	// Params are the compositor configuration parameters
	Params CompositorParams
}

// CompositorParams defines the overlay parameters
type CompositorParams struct {
	// Opacity of the rendered overlay cells in the range [0,1], this only
	// affects rendering and not the object scores
	Opacity float64
}

// CompositorDefaultParams returns fully opaque overlay cells
func CompositorDefaultParams() CompositorParams {
	return CompositorParams{
		Opacity: 1.0,
	}
}

// NewCompositor returns an instance of the overlay compositor
func NewCompositor(p CompositorParams) *Compositor {
	return &Compositor{
		Params: p,
	}
}

// OverlayCell is a single heatmap grid cell mapped into image pixel space
type OverlayCell struct {
	// Col and Row are the grid indices (i, j) of the cell
	Col int
	Row int
	// Rect is the cell area in image pixel coordinates
	Rect result.Rect
	// Alpha is the grid value clamped to [0,1]
	Alpha float64
	// Lightness of the cell color, 1 - Alpha.  Higher heatmap values give
	// darker cells.
	Lightness float64
	// Color is the grayscale color of the cell
	Color colorful.Color
	// Objects are the indices of the detected objects the cell intersects
	Objects []int
}

// Weight is the amount the cell adds to the score of an object it
// intersects
func (c OverlayCell) Weight() float64 {
	return 1 - c.Alpha
}

// Overlay is the rendering description of a heatmap over an image
type Overlay struct {
	// Cols and Rows are the grid dimensions
	Cols int
	Rows int
	// Size of the image the overlay is mapped to
	Size image.Point
	// CellWidth and CellHeight are the pixel dimensions of a cell
	CellWidth  float64
	CellHeight float64
	// Opacity to render the cells with
	Opacity float64
	// Cells in row major order, the cell for column i and row j is at
	// index j*Cols + i
	Cells []OverlayCell
}

// Cell returns the cell at column i and row j
func (o *Overlay) Cell(i, j int) OverlayCell {
	return o.Cells[j*o.Cols+i]
}

// ObjectScore is the overlay score of a single detected object
type ObjectScore struct {
	// ID of the detected object
	ID string
	// Label of the detected object
	Label string
	// Score is the sum of 1 - alpha of every cell intersecting the object
	Score float64
	// Cells is the number of cells that intersect the object
	Cells int
}

// Scores are the object scores in detection order
type Scores []ObjectScore

// Get returns the score of the object with the given ID.  If the same ID was
// detected more than once the first score is returned.
func (s Scores) Get(id string) (float64, bool) {

	for _, sc := range s {
		if sc.ID == id {
			return sc.Score, true
		}
	}

	return 0, false
}

// Map returns the scores keyed by object ID
func (s Scores) Map() map[string]float64 {

	m := make(map[string]float64, len(s))

	// iterate in reverse so the first score wins on duplicate IDs
	for i := len(s) - 1; i >= 0; i-- {
		m[s[i].ID] = s[i].Score
	}

	return m
}

// Render maps the normalized grid onto an image of the given size and scores
// every detected object.
//
// Every cell is checked against every object so the cost grows with
// cols x rows x objects.  That is fine at the tens of cells per axis heatmap
// models output, a grid to object lookup would be needed if detection counts
// grow large.
func (c *Compositor) Render(grid mat.Matrix, size image.Point,
	dets []result.DetectedObject) (*Overlay, Scores) {

	rows, cols := grid.Dims()

	ov := &Overlay{
		Cols:       cols,
		Rows:       rows,
		Size:       size,
		CellWidth:  float64(size.X) / float64(cols),
		CellHeight: float64(size.Y) / float64(rows),
		Opacity:    clamp(c.Params.Opacity, 0, 1),
		Cells:      make([]OverlayCell, 0, rows*cols),
	}

	scores := make(Scores, len(dets))

	for k, det := range dets {
		scores[k] = ObjectScore{
			ID:    det.ID,
			Label: det.Label,
		}
	}

	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {

			alpha := clamp(grid.At(j, i), 0, 1)
			lightness := 1 - alpha

			cell := OverlayCell{
				Col: i,
				Row: j,
				Rect: result.NewRect(float64(i)*ov.CellWidth, float64(j)*ov.CellHeight,
					ov.CellWidth, ov.CellHeight),
				Alpha:     alpha,
				Lightness: lightness,
				Color:     colorful.Color{R: lightness, G: lightness, B: lightness},
			}

			for k, det := range dets {
				if !cell.Rect.Intersects(det.Rect) {
					continue
				}

				scores[k].Score += cell.Weight()
				scores[k].Cells++
				cell.Objects = append(cell.Objects, k)
			}

			ov.Cells = append(ov.Cells, cell)
		}
	}

	return ov, scores
}
