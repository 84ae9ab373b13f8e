package session

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/swdee/go-depthfuse"
	"github.com/swdee/go-depthfuse/postprocess"
	"github.com/swdee/go-depthfuse/postprocess/result"
	"go.uber.org/zap"
)

// Params defines the session configuration parameters
type Params struct {
	// Heatmap normalization parameters
	Heatmap postprocess.HeatmapParams
	// Compositor overlay parameters
	Compositor postprocess.CompositorParams
	// Orientation passed to the object detector with the image
	Orientation depthfuse.Orientation
	// Timeout for a single inference call, zero means no timeout
	Timeout time.Duration
	// ResultBuffer is the capacity of the Results channel.  When the buffer
	// is full the oldest result is dropped.
	ResultBuffer int
}

// DefaultParams returns the default session parameters
func DefaultParams() Params {
	return Params{
		Heatmap:      postprocess.HeatmapDefaultParams(),
		Compositor:   postprocess.CompositorDefaultParams(),
		Orientation:  depthfuse.OrientationUp,
		Timeout:      0,
		ResultBuffer: 8,
	}
}

// Session runs input cycles of image selection, object detection and depth
// detection.  Inference runs in the background while all session state, the
// detection store and result delivery are handled on a single coordination
// goroutine.  Results of inference started before a Reset or a new image
// selection are discarded.
type Session struct {
	detector  depthfuse.ObjectDetector
	estimator depthfuse.DepthEstimator
	sink      depthfuse.AlertSink
	params    Params
	log       *zap.Logger

	heatmap    *postprocess.Heatmap
	compositor *postprocess.Compositor
	policy     *postprocess.AlertPolicy
	ids        *result.IDGenerator

	ctx     context.Context
	cancel  context.CancelFunc
	ops     chan func()
	results chan Result
	quit    chan struct{}
	done    chan struct{}
	close   sync.Once

	// the following are only accessed on the coordination goroutine
	stage      Stage
	img        image.Image
	store      *result.Store
	generation uint64
	inflight   []context.CancelFunc
	pending    int
	objApplied chan struct{}
}

// New creates a session and starts its coordination goroutine.  The alert
// sink and logger may be nil.
func New(detector depthfuse.ObjectDetector, estimator depthfuse.DepthEstimator,
	sink depthfuse.AlertSink, p Params, log *zap.Logger) *Session {

	if log == nil {
		log = zap.NewNop()
	}

	if p.ResultBuffer < 1 {
		p.ResultBuffer = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		detector:   detector,
		estimator:  estimator,
		sink:       sink,
		params:     p,
		log:        log,
		heatmap:    postprocess.NewHeatmap(p.Heatmap),
		compositor: postprocess.NewCompositor(p.Compositor),
		policy:     postprocess.NewAlertPolicy(),
		ids:        result.NewIDGenerator(),
		ctx:        ctx,
		cancel:     cancel,
		ops:        make(chan func()),
		results:    make(chan Result, p.ResultBuffer),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		stage:      AwaitingImage,
		store:      result.NewStore(),
	}

	go s.run()

	return s
}

// SetIDGenerator replaces the generator used to assign detected object IDs
func (s *Session) SetIDGenerator(gen *result.IDGenerator) error {
	return s.do(func() {
		s.ids = gen
	})
}

// run is the coordination loop
func (s *Session) run() {
	defer close(s.done)

	for {
		select {
		case op := <-s.ops:
			op()

		case <-s.quit:
			s.cancelInflight()
			close(s.results)
			return
		}
	}
}

// do runs fn on the coordination goroutine and waits for it to complete
func (s *Session) do(fn func()) error {

	finished := make(chan struct{})

	select {
	case s.ops <- func() {
		defer close(finished)
		fn()
	}:
	case <-s.quit:
		return depthfuse.ErrSessionClosed
	}

	<-finished

	return nil
}

// post queues fn to run on the coordination goroutine without waiting.  It
// returns false if the session has been closed.
func (s *Session) post(fn func()) bool {
	select {
	case s.ops <- fn:
		return true
	case <-s.quit:
		return false
	}
}

// Close stops the session, cancels any running inference and closes the
// Results channel
func (s *Session) Close() {
	s.close.Do(func() {
		close(s.quit)
		<-s.done
		s.cancel()
	})
}

// Results returns the channel results are delivered on.  It is closed when
// the session is closed.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Stage returns the current stage of the input cycle
func (s *Session) Stage() Stage {

	var stage Stage

	if err := s.do(func() { stage = s.stage }); err != nil {
		return AwaitingImage
	}

	return stage
}

// Detections returns the objects detected in the current input cycle
func (s *Session) Detections() []result.DetectedObject {
	return s.store.All()
}

// Pending returns the number of inference calls whose results have not been
// applied or discarded yet
func (s *Session) Pending() int {

	var n int

	if err := s.do(func() { n = s.pending }); err != nil {
		return 0
	}

	return n
}

// SelectImage starts a new input cycle on the image from any stage.  Running
// inference of the previous cycle is cancelled and its results discarded.
func (s *Session) SelectImage(img image.Image) error {

	if img == nil {
		return fmt.Errorf("select image: %w", depthfuse.ErrNoImage)
	}

	return s.do(func() {
		s.newCycle()
		s.img = img
		s.stage = AwaitingObjectDetection

		s.log.Debug("image selected",
			zap.Uint64("generation", s.generation),
			zap.Stringer("size", img.Bounds().Size()),
		)
	})
}

// Reset returns the session to AwaitingImage from any stage, clearing the
// detected objects.  Running inference is cancelled and its results
// discarded.
func (s *Session) Reset() error {
	return s.do(func() {
		s.newCycle()

		s.log.Debug("session reset", zap.Uint64("generation", s.generation))
	})
}

// Advance moves the input cycle on to the next stage starting the inference
// for the current stage in the background.  It returns without waiting for
// the inference to complete, results are delivered on the Results channel.
func (s *Session) Advance() error {

	var err error

	if e := s.do(func() { err = s.advance() }); e != nil {
		return e
	}

	return err
}

// advance performs the stage transition
func (s *Session) advance() error {

	switch s.stage {
	case AwaitingObjectDetection:
		s.startObjectDetection()
		s.stage = AwaitingDepthDetection

	case AwaitingDepthDetection:
		s.startDepthDetection()
		s.stage = AwaitingImage

	case AwaitingImage:
		fallthrough
	default:
		return fmt.Errorf("advance: %w", depthfuse.ErrNoImage)
	}

	return nil
}

// newCycle discards all state of the current input cycle
func (s *Session) newCycle() {
	s.cancelInflight()
	s.generation++
	s.store.Clear()
	s.img = nil
	s.objApplied = nil
	s.stage = AwaitingImage
}

// cancelInflight cancels all running inference
func (s *Session) cancelInflight() {
	for _, cancel := range s.inflight {
		cancel()
	}
	s.inflight = nil
}

// inferenceContext returns the context an inference call runs under
func (s *Session) inferenceContext() (context.Context, context.CancelFunc) {

	if s.params.Timeout > 0 {
		return context.WithTimeout(s.ctx, s.params.Timeout)
	}

	return context.WithCancel(s.ctx)
}

// startObjectDetection runs the object detector on the current image
func (s *Session) startObjectDetection() {

	gen := s.generation
	img := s.img
	size := img.Bounds().Size()
	orient := s.params.Orientation
	applied := make(chan struct{})

	ctx, cancel := s.inferenceContext()
	s.inflight = append(s.inflight, cancel)
	s.objApplied = applied
	s.pending++

	task := depthfuse.Go(ctx, func(ctx context.Context) ([]depthfuse.Observation, error) {
		return s.detector.DetectObjects(ctx, img, orient)
	})

	go func() {
		obs, err := task.Wait(context.Background())
		cancel()

		s.post(func() {
			defer close(applied)
			s.applyObjects(gen, size, obs, err)
		})
	}()
}

// applyObjects stores the detected objects of a completed object detection
func (s *Session) applyObjects(gen uint64, size image.Point,
	obs []depthfuse.Observation, err error) {

	s.pending--

	if gen != s.generation {
		s.log.Debug("discarding stale object detections",
			zap.Uint64("generation", gen),
			zap.Uint64("current", s.generation),
		)
		return
	}

	if err != nil {
		s.log.Warn("object detection failed", zap.Error(err))
		s.publish(Result{Kind: ObjectDetection, Generation: gen, Err: err})
		return
	}

	objs := postprocess.ObservationsToObjects(obs, size, s.ids)
	s.store.AddAll(objs)

	s.log.Debug("objects detected",
		zap.Uint64("generation", gen),
		zap.Int("objects", len(objs)),
	)

	s.publish(Result{Kind: ObjectDetection, Generation: gen, Objects: objs})
}

// startDepthDetection runs the depth estimator on the current image, fusion
// happens once the object detections of the cycle have been stored
func (s *Session) startDepthDetection() {

	gen := s.generation
	img := s.img
	size := img.Bounds().Size()
	objApplied := s.objApplied

	ctx, cancel := s.inferenceContext()
	s.inflight = append(s.inflight, cancel)
	s.pending++

	task := depthfuse.Go(ctx, func(ctx context.Context) (*depthfuse.RawTensor, error) {
		return s.estimator.EstimateDepth(ctx, img)
	})

	go func() {
		tensor, err := task.Wait(context.Background())
		cancel()

		if objApplied != nil {
			select {
			case <-objApplied:
			case <-s.quit:
				return
			}
		}

		s.post(func() {
			s.applyDepth(gen, size, tensor, err)
		})
	}()
}

// applyDepth normalizes the depth tensor, composites it with the detected
// objects and evaluates the alert policy
func (s *Session) applyDepth(gen uint64, size image.Point,
	tensor *depthfuse.RawTensor, err error) {

	s.pending--

	if gen != s.generation {
		s.log.Debug("discarding stale depth detection",
			zap.Uint64("generation", gen),
			zap.Uint64("current", s.generation),
		)
		return
	}

	if err != nil {
		s.log.Warn("depth detection failed", zap.Error(err))
		s.publish(Result{Kind: DepthDetection, Generation: gen, Err: err})
		return
	}

	res, err := s.Fuse(tensor, size, s.store.All())

	if err != nil {
		s.log.Warn("heatmap fusion failed", zap.Error(err))
		s.publish(Result{Kind: DepthDetection, Generation: gen, Err: err})
		return
	}

	res.Generation = gen

	if res.Heatmap.Degenerate {
		s.log.Warn("depth tensor has no value range, using zero heatmap",
			zap.Stringer("tensor", tensor))
	}

	s.log.Debug("depth detection fused",
		zap.Uint64("generation", gen),
		zap.Int("objects", len(res.Objects)),
		zap.Float64("mean", res.Mean),
		zap.Bool("alert", res.Alert),
	)

	if res.Alert && s.sink != nil {
		go s.sink.Alert()
	}

	s.publish(res)
}

// Fuse runs the numeric pipeline on a depth tensor for an image of the given
// size: normalization, overlay composition with the objects and alert
// evaluation.  It has no side effects on the session.
func (s *Session) Fuse(tensor *depthfuse.RawTensor, size image.Point,
	objs []result.DetectedObject) (Result, error) {

	hm, err := s.heatmap.Normalize(tensor)

	if err != nil {
		return Result{}, fmt.Errorf("error normalizing heatmap: %w", err)
	}

	ov, scores := s.compositor.Render(hm.Normalized, size, objs)
	mean := s.policy.Mean(hm.Binarized)

	return Result{
		Kind:    DepthDetection,
		Objects: objs,
		Heatmap: hm,
		Overlay: ov,
		Scores:  scores,
		Mean:    mean,
		Alert:   s.policy.Evaluate(hm.Binarized),
	}, nil
}

// publish delivers a result, dropping the oldest queued result if the
// channel is full
func (s *Session) publish(r Result) {

	for {
		select {
		case s.results <- r:
			return
		default:
		}

		select {
		case old := <-s.results:
			s.log.Warn("result buffer full, dropping oldest result",
				zap.Stringer("kind", old.Kind),
				zap.Uint64("generation", old.Generation),
			)
		default:
		}
	}
}
