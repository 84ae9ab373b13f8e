package render

import (
	"image"
	"math"

	"github.com/swdee/go-depthfuse/postprocess"
	"github.com/swdee/go-depthfuse/postprocess/result"
	"gocv.io/x/gocv"
)

// Mode selects which overlay cells are rendered
type Mode int

const (
	// AllCells renders every heatmap cell over the whole image
	AllCells Mode = 0
	// MaskDetections only renders the cells that intersect a detected object
	MaskDetections Mode = 1
)

// visible returns true if the cell should be rendered in the given mode
func (m Mode) visible(cell postprocess.OverlayCell) bool {
	return m == AllCells || len(cell.Objects) > 0
}

// cellBounds rounds a cell rectangle to pixel boundaries.  Rounding both
// edges means neighbouring cells share no pixels.
func cellBounds(r result.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.TLX())),
		int(math.Round(r.TLY())),
		int(math.Round(r.BRX())),
		int(math.Round(r.BRY())),
	)
}

// HeatmapOverlay renders the heatmap overlay cells on top of the image.  The
// image must be a 3 channel BGR Mat the same size the overlay was composed
// for, cells are blended using the overlay opacity.
func HeatmapOverlay(img *gocv.Mat, ov *postprocess.Overlay, mode Mode) {

	// get dimensions
	width := img.Cols()
	height := img.Rows()
	bounds := image.Rect(0, 0, width, height)

	alpha := float32(ov.Opacity)

	// it is too slow to manipulate pixel by pixel using GoCV due to slowness
	// over CGO.  So we copy the bytes from the source image and manipulate
	// the bytes directly before copying back to a Mat
	imgData := img.ToBytes()

	for _, cell := range ov.Cells {

		if !mode.visible(cell) {
			continue
		}

		clr := cellColor(cell.Color)
		area := cellBounds(cell.Rect).Intersect(bounds)

		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {

				// calculate position in the byte slice
				pixelPos := y*width*3 + x*3

				// get original pixel colors directly from the byte slice
				b, g, r := imgData[pixelPos+0], imgData[pixelPos+1], imgData[pixelPos+2]

				// calculate blended colors based on alpha transparency
				imgData[pixelPos+0] = uint8(float32(b)*(1-alpha) + float32(clr.B)*alpha)
				imgData[pixelPos+1] = uint8(float32(g)*(1-alpha) + float32(clr.G)*alpha)
				imgData[pixelPos+2] = uint8(float32(r)*(1-alpha) + float32(clr.R)*alpha)
			}
		}
	}

	// copy back to the original mat
	tmpImg, _ := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, imgData)
	defer tmpImg.Close()
	tmpImg.CopyTo(img)
}
