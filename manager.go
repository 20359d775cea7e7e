package edgehttp

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// RequestManager orchestrates receive -> enqueue -> dispatch -> enqueue
// response -> send across the primary (local) and, if present, the
// secondary (cloud) transport.
type RequestManager struct {
	dispatcher *Dispatcher
	primary    Transport
	secondary  Transport
	requests   *RequestQueue
	responses  *ResponseQueue
	pool       ThreadPool

	// TickInterval is the cooperative delay Run waits between ticks. A
	// policy knob, not an invariant; zero or negative falls back to 1ms.
	TickInterval time.Duration
}

// NewRequestManager wires a dispatcher to a primary transport and an
// optional secondary transport. Dispatch always runs on the manager's
// own goroutine; pool, if non-nil, runs the two response-lane drains.
// pool may be nil; the lanes are then drained inline, one after the other.
func NewRequestManager(dispatcher *Dispatcher, primary, secondary Transport, pool ThreadPool) *RequestManager {
	return &RequestManager{
		dispatcher:   dispatcher,
		primary:      primary,
		secondary:    secondary,
		requests:     NewRequestQueue(),
		responses:    NewResponseQueue(),
		pool:         pool,
		TickInterval: time.Second,
	}
}

// StartServer starts the primary transport and, if present, the
// secondary, aggregating any startup failures. It returns success iff
// the primary transport started.
func (m *RequestManager) StartServer(ctx context.Context, port int) (bool, error) {
	var errs error

	primaryOK, err := m.primary.Start(ctx, port)
	if err != nil {
		errs = multierr.Append(errs, err)
	}

	if m.secondary != nil {
		if _, err := m.secondary.Start(ctx, port); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return primaryOK, errs
}

// StopServer stops both transports, aggregating failures. Idempotent.
func (m *RequestManager) StopServer() error {
	var errs error
	if err := m.primary.Stop(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if m.secondary != nil {
		if err := m.secondary.Stop(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Run drives Tick in a loop until ctx is cancelled, sleeping
// TickInterval between ticks.
func (m *RequestManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.tickDelay())
	defer ticker.Stop()
	for {
		if err := m.Tick(ctx); err != nil {
			logger.Errorw("tick failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *RequestManager) tickDelay() time.Duration {
	if m.TickInterval <= 0 {
		return time.Millisecond
	}
	return m.TickInterval
}

// Tick performs one receive/dispatch/send cycle across both transports.
func (m *RequestManager) Tick(ctx context.Context) error {
	if err := m.receiveAll(ctx); err != nil {
		return err
	}
	m.drainRequests()
	m.drainResponses(ctx)
	return nil
}

// receiveAll fans out ReceiveMessage to each transport concurrently;
// per spec this means inter-transport ordering is not preserved, only
// intentionally so.
func (m *RequestManager) receiveAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.receiveFrom(gctx, m.primary)
	})
	if m.secondary != nil {
		g.Go(func() error {
			return m.receiveFrom(gctx, m.secondary)
		})
	}

	return g.Wait()
}

func (m *RequestManager) receiveFrom(ctx context.Context, t Transport) error {
	req, err := t.ReceiveMessage(ctx)
	if err != nil {
		logger.Warnw("transport receive failed", "transport", t.GetID(), "error", err)
		return nil
	}
	m.requests.Enqueue(req)
	return nil
}

// drainRequests dispatches every queued request, single-threaded, so
// per-lane response order matches per-lane request order.
func (m *RequestManager) drainRequests() {
	for {
		req := m.requests.Dequeue()
		if req == nil {
			return
		}
		wire := m.dispatcher.Dispatch(req)
		m.responses.Enqueue(wire)
	}
}

// drainResponses pops each lane dry, sending through the transport that
// owns it: the local lane through the primary transport, the cloud lane
// through the secondary. The two lanes are independent, so per spec the
// drain for each may run on any worker; within a lane, sends stay
// strictly sequential so per-lane response order is preserved.
func (m *RequestManager) drainResponses(ctx context.Context) {
	drainLocal := func() {
		for {
			resp, ok := m.responses.DequeueLocalResponse()
			if !ok {
				return
			}
			m.send(ctx, m.primary, resp)
		}
	}
	drainCloud := func() {
		for {
			resp, ok := m.responses.DequeueCloudResponse()
			if !ok {
				return
			}
			m.send(ctx, m.secondary, resp)
		}
	}

	if m.secondary == nil {
		drainLocal()
		return
	}

	if m.pool == nil {
		drainLocal()
		drainCloud()
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	m.pool.Submit(func() { defer wg.Done(); drainLocal() })
	m.pool.Submit(func() { defer wg.Done(); drainCloud() })
	wg.Wait()
}

func (m *RequestManager) send(ctx context.Context, t Transport, resp WireResponse) {
	if resp.RequestID == "" {
		return
	}
	ok, err := t.SendMessage(ctx, resp.RequestID, resp.ToHttpString())
	if err != nil {
		logger.Warnw("transport send failed", "transport", t.GetID(), "error", err)
		return
	}
	if !ok {
		logger.Warnw("transport send reported failure", "transport", t.GetID(), "requestId", resp.RequestID)
	}
}
