package depthfuse

import (
	"context"
	"image"
	"io"
	"sync"
)

// Pool is a simple pool of inference instances so multiple of the same
// model can run concurrently, for example across several accelerator cores
type Pool[T any] struct {
	// pool of instances
	items chan T
	// size of pool
	size   int
	mu     sync.Mutex
	closed bool
}

// NewPool creates a new pool of the given size, calling create once for each
// instance
func NewPool[T any](size int, create func(i int) (T, error)) (*Pool[T], error) {

	if size < 1 {
		size = 1
	}

	p := &Pool[T]{
		items: make(chan T, size),
		size:  size,
	}

	for i := 0; i < size; i++ {
		item, err := create(i)

		if err != nil {
			// close any instances that may have been created before receiving
			// the error
			p.Close()
			return nil, err
		}

		// attach to pool
		p.Return(item)
	}

	return p, nil
}

// Size returns the number of instances in the pool
func (p *Pool[T]) Size() int {
	return p.size
}

// Get an instance from the pool, waiting until one is free or ctx is done.
// ErrSessionClosed is returned if the pool has been closed.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {

	var zero T

	select {
	case item, ok := <-p.items:
		if !ok {
			return zero, ErrSessionClosed
		}
		return item, nil

	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Return an instance to the pool.  Instances returned after the pool has
// been closed or when it is already full are closed instead.
func (p *Pool[T]) Return(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		closeItem(item)
		return
	}

	select {
	case p.items <- item:
	default:
		// pool is full
		closeItem(item)
	}
}

// Close the pool and all idle instances in it that implement io.Closer
func (p *Pool[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	close(p.items)

	for next := range p.items {
		closeItem(next)
	}
}

func closeItem[T any](item T) {
	if c, ok := any(item).(io.Closer); ok {
		_ = c.Close()
	}
}

// DetectorPool is an ObjectDetector that runs each call on a free detector
// from the pool
type DetectorPool struct {
	*Pool[ObjectDetector]
}

// NewDetectorPool creates a pool of size object detectors
func NewDetectorPool(size int, create func(i int) (ObjectDetector, error)) (*DetectorPool, error) {

	p, err := NewPool(size, create)

	if err != nil {
		return nil, err
	}

	return &DetectorPool{p}, nil
}

// DetectObjects borrows a detector from the pool for the call
func (p *DetectorPool) DetectObjects(ctx context.Context, img image.Image,
	orient Orientation) ([]Observation, error) {

	d, err := p.Get(ctx)

	if err != nil {
		return nil, err
	}

	defer p.Return(d)

	return d.DetectObjects(ctx, img, orient)
}

// EstimatorPool is a DepthEstimator that runs each call on a free estimator
// from the pool
type EstimatorPool struct {
	*Pool[DepthEstimator]
}

// NewEstimatorPool creates a pool of size depth estimators
func NewEstimatorPool(size int, create func(i int) (DepthEstimator, error)) (*EstimatorPool, error) {

	p, err := NewPool(size, create)

	if err != nil {
		return nil, err
	}

	return &EstimatorPool{p}, nil
}

// EstimateDepth borrows an estimator from the pool for the call
func (p *EstimatorPool) EstimateDepth(ctx context.Context, img image.Image) (*RawTensor, error) {

	e, err := p.Get(ctx)

	if err != nil {
		return nil, err
	}

	defer p.Return(e)

	return e.EstimateDepth(ctx, img)
}
