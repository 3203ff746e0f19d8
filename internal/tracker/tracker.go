// README: Refresh orchestrator; refetches routes on a fixed interval and
// publishes consolidated views.
package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"trackmap/internal/geo"
	"trackmap/internal/progress"
	"trackmap/internal/routing"
)

const defaultInterval = 60 * time.Second

// Fetcher is the routing dependency. Implementations never return an error;
// an unroutable pair degrades to the zero RouteResult.
type Fetcher interface {
	FetchRoute(ctx context.Context, from, to geo.Point) routing.RouteResult
}

// Publisher receives every freshly built view. Optional.
type Publisher interface {
	Publish(ctx context.Context, v View) error
}

// Tracker owns the refresh loop for a single tracked trip. At most one
// ticker is alive at a time: Start and Update tear down the previous loop
// before creating a new one, and Stop tears it down for good.
type Tracker struct {
	fetcher   Fetcher
	publisher Publisher
	interval  time.Duration

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	inputs     Inputs
	view       *View
}

func New(fetcher Fetcher, publisher Publisher, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Tracker{fetcher: fetcher, publisher: publisher, interval: interval}
}

// Start begins refreshing for the given inputs: one cycle immediately, then
// one per interval. A previous loop, if any, is cancelled first.
func (t *Tracker) Start(in Inputs) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.generation++
	gen := t.generation
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.inputs = in
	t.mu.Unlock()

	go t.run(ctx, gen, in)
}

// Update restarts the loop with fresh inputs, applied immediately.
func (t *Tracker) Update(in Inputs) {
	t.Start(in)
}

// SetVehicle restarts the loop with a new vehicle position, keeping the rest
// of the current inputs.
func (t *Tracker) SetVehicle(p geo.Point) {
	t.mu.Lock()
	in := t.inputs
	t.mu.Unlock()
	in.Vehicle = p
	t.Start(in)
}

// Stop cancels the active loop. In-flight cycles are invalidated; their
// results are dropped when they resolve.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.generation++
}

// Inputs returns the input set of the most recent Start.
func (t *Tracker) Inputs() Inputs {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inputs
}

// Latest returns the most recently published view, if any.
func (t *Tracker) Latest() (View, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.view == nil {
		return View{}, false
	}
	return *t.view, true
}

func (t *Tracker) run(ctx context.Context, gen uint64, in Inputs) {
	t.cycle(ctx, gen, in)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.cycle(ctx, gen, in)
		}
	}
}

// cycle runs one full refresh: fetch both routes, derive the snapshot and
// bounds, and publish atomically. A panic anywhere in the cycle is logged and
// the cycle skipped; the previous view stays up.
func (t *Tracker) cycle(ctx context.Context, gen uint64, in Inputs) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tracker: refresh cycle skipped: %v", r)
		}
	}()

	target := in.Start
	if in.IsRouting {
		target = in.End
	}

	// The two fetches are independent; both must resolve (or fail soft to
	// zero) before anything is published.
	var full, current routing.RouteResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		full = t.fetcher.FetchRoute(ctx, in.Start, in.End)
	}()
	go func() {
		defer wg.Done()
		current = t.fetcher.FetchRoute(ctx, in.Vehicle, target)
	}()
	wg.Wait()

	p := progress.Estimate(in.Vehicle, in.Start, in.End, full.DistanceMeters, in.IsRouting)

	snap := Snapshot{
		TotalDistanceKm:    fmt.Sprintf("%.2f", full.DistanceMeters/1000),
		VehicleToTargetKm:  fmt.Sprintf("%.2f", current.DistanceMeters/1000),
		ProgressPercent:    p.Display(),
		EstimatedTime:      progress.FormatDuration(current.DurationSeconds),
		TotalEstimatedTime: progress.FormatDuration(full.DurationSeconds),
	}

	var bounds geo.Region
	bounds.Extend(in.Start)
	bounds.Extend(in.End)
	bounds.Extend(in.Vehicle)
	bounds.ExtendAll(full.Geometry)
	bounds.ExtendAll(current.Geometry)

	color := ReturningColor
	if in.IsRouting {
		color = RoutingColor
	}

	view := View{
		Snapshot:          snap,
		FullRoute:         full.Geometry,
		CurrentRoute:      current.Geometry,
		CurrentRouteColor: color,
		Bounds:            bounds,
		RouteUnavailable:  full.DistanceMeters == 0,
		UpdatedAt:         time.Now(),
	}

	t.mu.Lock()
	if gen != t.generation {
		// Superseded while in flight; drop the stale result.
		t.mu.Unlock()
		return
	}
	t.view = &view
	t.mu.Unlock()

	if t.publisher != nil {
		if err := t.publisher.Publish(ctx, view); err != nil {
			log.Printf("tracker: publish failed: %v", err)
		}
	}
}
