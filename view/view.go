// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/pxscale"
	"github.com/gogpu/pxscale/cache"
)

// scaleFunc matches pxscale.Scale.
type scaleFunc func(src *pxscale.Raster, req pxscale.Request, opts ...pxscale.Option) (*pxscale.Raster, error)

// Option configures a View.
type Option func(*View)

// WithScaleOptions passes opts to every render.
func WithScaleOptions(opts ...pxscale.Option) Option {
	return func(v *View) {
		v.scaleOpts = append(v.scaleOpts, opts...)
	}
}

// WithLogger sets the logger for render decisions. It is also handed to
// the engine. Defaults to pxscale.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithCache keeps the results of the n most recent distinct renders, so
// switching back to earlier inputs does not resample again. n <= 0
// disables the cache. The default is cache.DefaultCapacity.
func WithCache(n int) Option {
	return func(v *View) {
		if n <= 0 {
			v.results = nil
			return
		}
		v.results = cache.New[renderKey, *pxscale.Raster](n)
	}
}

// OnRender registers fn to be called after each render that is not
// superseded by a newer finished one. fn runs on the render goroutine.
func OnRender(fn func(Event)) Option {
	return func(v *View) {
		v.onRender = fn
	}
}

// View renders its latest Params in the background and exposes the newest
// committed result. It is safe for concurrent use.
type View struct {
	scale     scaleFunc
	scaleOpts []pxscale.Option
	logger    *slog.Logger
	onRender  func(Event)
	results   *cache.LRU[renderKey, *pxscale.Raster]

	mu        sync.Mutex
	params    Params          // latest requested
	current   *pxscale.Raster // latest committed
	committed uint64          // generation of current
	done      uint64          // newest finished generation
	err       error           // outcome of done
	changed   chan struct{}   // closed when done advances

	wg sync.WaitGroup
}

// New returns an empty View with the zero Params: no source, a 1x spec,
// nearest mode and the software backend.
func New(opts ...Option) *View {
	v := &View{
		scale:   pxscale.Scale,
		logger:  pxscale.Logger(),
		changed: make(chan struct{}),
		results: cache.New[renderKey, *pxscale.Raster](cache.DefaultCapacity),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// SetSource replaces the source raster. A nil source clears the view.
// The raster must not be modified afterwards.
func (v *View) SetSource(src *pxscale.Raster) Params {
	return v.Update(func(p *Params) { p.Source = src })
}

// SetSpec replaces the scale specification.
func (v *View) SetSpec(spec pxscale.ScaleSpec) Params {
	return v.Update(func(p *Params) { p.Spec = spec })
}

// SetMode replaces the scale mode.
func (v *View) SetMode(mode pxscale.ScaleMode) Params {
	return v.Update(func(p *Params) { p.Mode = mode })
}

// SetBackend replaces the render backend.
func (v *View) SetBackend(backend pxscale.RenderBackend) Params {
	return v.Update(func(p *Params) { p.Backend = backend })
}

// Update applies fn to a copy of the current Params, stores the result as
// a new generation and starts rendering it. Use it to change several
// inputs with a single render. It returns the new snapshot.
func (v *View) Update(fn func(*Params)) Params {
	v.mu.Lock()
	p := v.params
	fn(&p)
	p.Generation = v.params.Generation + 1
	v.params = p
	v.wg.Add(1)
	v.mu.Unlock()

	go v.render(p)
	return p
}

func (v *View) render(p Params) {
	defer v.wg.Done()

	if v.stale(p.Generation) {
		v.logger.Debug("view: skipping superseded render", "params", p.String())
		return
	}

	out, cached, err := v.resample(p)

	v.mu.Lock()
	if p.Generation <= v.done {
		v.mu.Unlock()
		v.logger.Debug("view: dropping stale result", "params", p.String())
		return
	}
	ev := Event{Generation: p.Generation, Cached: cached, Err: err}
	if err == nil {
		v.current = out
		v.committed = p.Generation
		ev.Rendered = true
	}
	v.done = p.Generation
	v.err = err
	close(v.changed)
	v.changed = make(chan struct{})
	v.mu.Unlock()

	if err != nil {
		v.logger.Warn("view: render failed", "params", p.String(), "err", err)
	} else {
		v.logger.Debug("view: committed", "params", p.String(), "result", out, "cached", cached)
	}
	if v.onRender != nil {
		v.onRender(ev)
	}
}

// renderKey identifies a render result. Sources are compared by identity.
type renderKey struct {
	src *pxscale.Raster
	req pxscale.Request
}

// resample renders p, consulting the result cache first.
func (v *View) resample(p Params) (out *pxscale.Raster, cached bool, err error) {
	if p.Source == nil {
		return nil, false, nil
	}
	key := renderKey{src: p.Source, req: p.Request()}
	if v.results != nil {
		if hit, ok := v.results.Get(key); ok {
			return hit, true, nil
		}
	}
	opts := append([]pxscale.Option{pxscale.WithLogger(v.logger)}, v.scaleOpts...)
	out, err = v.scale(p.Source, p.Request(), opts...)
	if err == nil && v.results != nil {
		v.results.Set(key, out)
	}
	return out, false, err
}

// CacheStats reports the result cache counters. It is the zero Stats when
// the cache is disabled.
func (v *View) CacheStats() cache.Stats {
	if v.results == nil {
		return cache.Stats{}
	}
	return v.results.Stats()
}

// stale reports whether a newer generation has been requested.
func (v *View) stale(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return gen < v.params.Generation
}

// Params returns the latest requested snapshot.
func (v *View) Params() Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// Current returns the newest committed raster, or nil before the first
// successful render and after the source is cleared. The raster is shared
// and must not be modified.
func (v *View) Current() *pxscale.Raster {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Committed returns the generation of the raster returned by Current.
func (v *View) Committed() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.committed
}

// Err returns the error of the newest finished render, or nil.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Size reports the output size of the latest Params without rendering.
// It is 0x0 when there is no source.
func (v *View) Size() (width, height int, err error) {
	p := v.Params()
	if p.Source == nil {
		return 0, 0, nil
	}
	return pxscale.OutputSize(p.Source, p.Request())
}

// Wait blocks until the latest requested generation has finished and
// returns its render error. It returns ctx.Err() if ctx ends first.
func (v *View) Wait(ctx context.Context) error {
	for {
		v.mu.Lock()
		if v.done >= v.params.Generation {
			err := v.err
			v.mu.Unlock()
			return err
		}
		ch := v.changed
		v.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

// Close waits for in-flight renders to finish.
func (v *View) Close() {
	v.wg.Wait()
}
