package main

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/swdee/go-depthfuse/render"
	"github.com/swdee/go-depthfuse/replay"
	"github.com/swdee/go-depthfuse/session"
)

func TestDefaultInputs(t *testing.T) {

	img, orient, err := replay.LoadImage(defaultImage)

	if err != nil {
		t.Fatalf("failed to load default image: %v", err)
	}

	detector, err := replay.LoadDetections(defaultDetections)

	if err != nil {
		t.Fatalf("failed to load default detections: %v", err)
	}

	estimator, err := replay.LoadTensor(defaultTensor)

	if err != nil {
		t.Fatalf("failed to load default tensor: %v", err)
	}

	params := session.DefaultParams()
	params.Orientation = orient

	sess := session.New(detector, estimator, nil, params, nil)
	defer sess.Close()

	if err := sess.SelectImage(img); err != nil {
		t.Fatalf("SelectImage failed: %v", err)
	}

	if err := sess.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	if res := <-sess.Results(); res.Err != nil {
		t.Fatalf("object detection failed: %v", res.Err)
	}

	if err := sess.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	res := <-sess.Results()

	if res.Err != nil {
		t.Fatalf("depth detection failed: %v", res.Err)
	}

	if len(res.Objects) != 2 {
		t.Errorf("expected 2 objects, got %d", len(res.Objects))
	}

	out := filepath.Join(t.TempDir(), "out.png")

	if err := renderGo(img, res, render.AllCells, out); err != nil {
		t.Fatalf("failed to render result: %v", err)
	}

	saved, _, err := replay.LoadImage(out)

	if err != nil {
		t.Fatalf("failed to load rendered result: %v", err)
	}

	if saved.Bounds().Size() != img.Bounds().Size() {
		t.Errorf("expected output size %v, got %v", img.Bounds().Size(), saved.Bounds().Size())
	}

	if img.Bounds().Size() != image.Pt(64, 48) {
		t.Errorf("expected 64x48 default image, got %v", img.Bounds().Size())
	}
}
