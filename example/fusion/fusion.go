/*
Example code showing how to run one input cycle of object detection and depth
estimation, fusing the depth heatmap with the detected objects.  Model output
is replayed from recorded files so the example runs without an inference
runtime.
*/
package main

import (
	"errors"
	"flag"
	"image"
	"log"
	"time"

	"github.com/disintegration/imaging"
	"github.com/swdee/go-depthfuse"
	"github.com/swdee/go-depthfuse/render"
	"github.com/swdee/go-depthfuse/replay"
	"github.com/swdee/go-depthfuse/session"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// default input and output files shipped in the example data directory
const (
	defaultImage      = "../data/bedroom.png"
	defaultDetections = "../data/bedroom-detections.json"
	defaultTensor     = "../data/bedroom-depth.json"
	defaultOutput     = "../data/bedroom-out.jpg"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", defaultImage, "Image file to run the input cycle on")
	detFile := flag.String("d", defaultDetections, "Recorded object detections JSON file")
	tensorFile := flag.String("t", defaultTensor, "Recorded depth tensor JSON file")
	saveFile := flag.String("o", defaultOutput, "Output JPG file")
	mask := flag.Bool("mask", false, "Only render heatmap cells under detected objects")
	opacity := flag.Float64("a", 1.0, "Heatmap overlay opacity [0.0-1.0]")
	invert := flag.Bool("invert", false, "Invert normalized depth values")
	backend := flag.String("b", "go", "Rendering backend [go|gocv]")
	verbose := flag.Bool("v", false, "Verbose session logging")
	poolSize := flag.Int("n", 1, "Number of depth estimator instances to pool")

	flag.Parse()

	logger := zap.NewNop()

	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()

		if err != nil {
			log.Fatal("Error creating logger: ", err)
		}
	}

	defer logger.Sync()

	// load image and recorded model outputs
	img, orient, err := replay.LoadImage(*imgFile)

	if err != nil {
		log.Fatal("Error loading image: ", err)
	}

	detector, err := replay.LoadDetections(*detFile)

	if err != nil {
		log.Fatal("Error loading detections: ", err)
	}

	// create a pool of depth estimators, with a real model each instance
	// would run on its own accelerator core
	estimator, err := depthfuse.NewEstimatorPool(*poolSize,
		func(i int) (depthfuse.DepthEstimator, error) {
			return replay.LoadTensor(*tensorFile)
		})

	if err != nil {
		log.Fatal("Error loading depth tensor: ", err)
	}

	defer estimator.Close()

	// create session
	params := session.DefaultParams()
	params.Orientation = orient
	params.Compositor.Opacity = *opacity
	params.Heatmap.Invert = *invert

	sink := depthfuse.AlertFunc(func() {
		log.Println("ALERT: heatmap mean above threshold")
	})

	sess := session.New(detector, estimator, sink, params, logger)
	defer sess.Close()

	start := time.Now()

	if err := sess.SelectImage(img); err != nil {
		log.Fatal("Error selecting image: ", err)
	}

	// object detection
	if err := sess.Advance(); err != nil {
		log.Fatal("Error advancing to object detection: ", err)
	}

	res := <-sess.Results()

	if res.Err != nil {
		log.Fatal("Object detection failed: ", res.Err)
	}

	endDetect := time.Now()

	// depth detection and fusion
	if err := sess.Advance(); err != nil {
		log.Fatal("Error advancing to depth detection: ", err)
	}

	res = <-sess.Results()

	if res.Err != nil {
		log.Fatal("Depth detection failed: ", res.Err)
	}

	endFuse := time.Now()

	width, height := res.Heatmap.Dims()
	log.Printf("Heatmap grid=%dx%d, min=%.4f, max=%.4f, degenerate=%t\n",
		width, height, res.Heatmap.Min, res.Heatmap.Max, res.Heatmap.Degenerate)

	for _, obj := range res.Objects {
		score, _ := res.Scores.Get(obj.ID)
		log.Printf("Object %s label=%s rect=(%.0f,%.0f,%.0f,%.0f) score=%.3f\n",
			obj.ID, obj.Label, obj.Rect.X, obj.Rect.Y, obj.Rect.Width, obj.Rect.Height, score)
	}

	log.Printf("Binarized mean=%.3f, alert=%t\n", res.Mean, res.Alert)

	mode := render.AllCells

	if *mask {
		mode = render.MaskDetections
	}

	switch *backend {
	case "gocv":
		err = renderGoCV(img, res, mode, *saveFile)
	default:
		err = renderGo(img, res, mode, *saveFile)
	}

	if err != nil {
		log.Fatal("Error rendering result: ", err)
	}

	endRendering := time.Now()

	log.Printf("Run speed: object detection=%s, depth and fusion=%s, rendering=%s, total time=%s\n",
		endDetect.Sub(start).String(),
		endFuse.Sub(endDetect).String(),
		endRendering.Sub(endFuse).String(),
		endRendering.Sub(start).String(),
	)

	log.Printf("Saved result to %s\n", *saveFile)
	log.Println("done")
}

// renderGo renders the result with the pure Go backend
func renderGo(img image.Image, res session.Result, mode render.Mode,
	saveFile string) error {

	out := render.BlendHeatmap(img, res.Overlay, mode)
	render.DrawDetections(out, res.Objects, res.Scores)

	return imaging.Save(out, saveFile)
}

// renderGoCV renders the result with the gocv backend
func renderGoCV(img image.Image, res session.Result, mode render.Mode,
	saveFile string) error {

	mat, err := gocv.ImageToMatRGB(img)

	if err != nil {
		return err
	}

	defer mat.Close()

	render.HeatmapOverlay(&mat, res.Overlay, mode)
	render.DetectionBoxes(&mat, res.Objects, res.Scores, render.DefaultFont(), 1)

	if ok := gocv.IMWrite(saveFile, mat); !ok {
		return errors.New("failed to save the image")
	}

	return nil
}
