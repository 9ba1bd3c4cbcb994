package services

import (
	"context"
	"log"
	"time"

	"coffee-pickup/clock"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 10 * time.Second
	recordTimeout  = 3 * time.Second
)

// Dispatcher runs one fetch → aggregate → select → render → deliver cycle per call.
// Runs share no mutable state, so concurrent calls are independent.
type Dispatcher struct {
	Source          OrderSource
	Poster          Poster
	Renderer        *Renderer
	Clock           clock.Clock
	Rand            Rand        // nil uses the global source
	Log             DeliveryLog // optional
	FetchTimeout    time.Duration
	DeliveryTimeout time.Duration
	RecordTimeout   time.Duration // bounds Log.Record; zero means 3s
}

func NewDispatcher(source OrderSource, poster Poster, renderer *Renderer, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		Source:          source,
		Poster:          poster,
		Renderer:        renderer,
		Clock:           clk,
		FetchTimeout:    defaultTimeout,
		DeliveryTimeout: defaultTimeout,
	}
}

// SendDaily posts today's order summary. It returns false when there are no
// orders (nothing is posted) or when delivery fails.
func (d *Dispatcher) SendDaily(ctx context.Context) bool {
	runID := uuid.NewString()
	text, ok := d.render(ctx, runID)
	if !ok {
		return false
	}
	return d.deliver(ctx, runID, KindDaily, text)
}

// Preview renders today's message without posting it.
func (d *Dispatcher) Preview(ctx context.Context) (string, bool) {
	return d.render(ctx, uuid.NewString())
}

func (d *Dispatcher) SendOpenNotice(ctx context.Context) bool {
	return d.deliver(ctx, uuid.NewString(), KindOpen, d.Renderer.OpenNotice(FormatDate(d.Clock.Now())))
}

func (d *Dispatcher) SendCloseNotice(ctx context.Context) bool {
	return d.deliver(ctx, uuid.NewString(), KindClose, d.Renderer.CloseNotice(FormatDate(d.Clock.Now())))
}

func (d *Dispatcher) render(ctx context.Context, runID string) (string, bool) {
	now := d.Clock.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, timeoutOr(d.FetchTimeout))
	orders := d.Source.Orders(fetchCtx, now)
	cancel()
	if len(orders) == 0 {
		log.Printf("run=%s no orders for %s, nothing to send", runID, now.Format(time.DateOnly))
		return "", false
	}

	items, members := FlattenOrders(orders)
	pickup := SelectPickupMembers(members, PickupCount, d.Rand)
	stats := GenerateStats(items, d.Renderer.Labels())
	log.Printf("run=%s orders=%d items=%d pickup=%d", runID, len(orders), stats.TotalCount, len(pickup))

	return d.Renderer.Render(FormatDate(now), orders, pickup, stats), true
}

func (d *Dispatcher) deliver(ctx context.Context, runID, kind, text string) bool {
	postCtx, cancel := context.WithTimeout(ctx, timeoutOr(d.DeliveryTimeout))
	ok := d.Poster.Post(postCtx, text)
	cancel()
	log.Printf("run=%s kind=%s delivered=%v", runID, kind, ok)

	if d.Log != nil {
		timeout := d.RecordTimeout
		if timeout <= 0 {
			timeout = recordTimeout
		}
		recordCtx, cancel := context.WithTimeout(ctx, timeout)
		err := d.Log.Record(recordCtx, Delivery{
			RunID:   runID,
			Kind:    kind,
			Content: text,
			Success: ok,
			Meta:    map[string]interface{}{"sent_at": d.Clock.Now().Format(time.RFC3339)},
		})
		cancel()
		if err != nil {
			log.Printf("run=%s record delivery: %v", runID, err)
		}
	}
	return ok
}

func timeoutOr(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}
