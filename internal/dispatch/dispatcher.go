// Package dispatch submits built control requests asynchronously and maps
// each result to a small closed set of outcomes.
package dispatch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"shocklink/internal/metrics"
	"shocklink/internal/shock"
)

// NoResponseBody replaces the response text when the transport failed or the
// body could not be read.
const NoResponseBody = "No response from the server"

const maxBodyBytes = 1 << 20

// Dispatcher issues control requests without blocking the caller. Each
// Dispatch call owns an independent outcome stream, so overlapping triggers
// cannot interfere with one another.
type Dispatcher struct {
	client    *http.Client
	collector *metrics.Collector
	tracer    trace.Tracer
	log       zerolog.Logger
}

func New(client *http.Client, collector *metrics.Collector, tracer trace.Tracer, log zerolog.Logger) *Dispatcher {
	if client == nil {
		client = NewClient(0)
	}
	return &Dispatcher{client: client, collector: collector, tracer: tracer, log: log}
}

// Dispatch posts the request and returns immediately. Outcomes arrive on the
// returned channel: zero or more Progress ticks, then one terminal Success or
// Cancelled, after which the channel closes. There are no retries; every
// terminal state is displayable.
func (d *Dispatcher) Dispatch(ctx context.Context, req *shock.Request) <-chan Outcome {
	out := make(chan Outcome, 4)
	go d.run(ctx, req, out)
	return out
}

func (d *Dispatcher) run(ctx context.Context, req *shock.Request, out chan<- Outcome) {
	defer close(out)
	start := time.Now()

	if d.tracer != nil {
		var span trace.Span
		ctx, span = d.tracer.Start(ctx, "openshock.control",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("shock.url", req.URL),
				attribute.Int("shock.intensity", req.Intensity),
				attribute.Int("shock.duration_ms", req.DurationMs),
			))
		defer span.End()
		defer func() {
			if ctx.Err() != nil {
				span.SetStatus(codes.Error, "cancelled")
			}
		}()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		d.log.Error().Err(err).Str("url", req.URL).Msg("control request could not be constructed")
		d.finishFailure(out, start, err)
		return
	}
	httpReq.Header = req.Headers.Clone()
	httpReq.ContentLength = int64(len(req.Body))

	resp, err := d.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			d.finishCancelled(out, start)
			return
		}
		d.log.Error().Err(err).Str("url", req.URL).Msg("control request failed")
		d.finishFailure(out, start, err)
		return
	}
	defer resp.Body.Close()

	reader := &progressReader{
		r:     io.LimitReader(resp.Body, maxBodyBytes),
		total: resp.ContentLength,
		report: func(fraction float64) {
			// Progress ticks are droppable; never block the transfer on a
			// slow consumer.
			select {
			case out <- Outcome{Kind: KindProgress, Percent: fraction * 100}:
			default:
			}
		},
	}

	body, err := io.ReadAll(reader)
	latency := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			d.finishCancelled(out, start)
			return
		}
		d.log.Error().Err(err).Str("url", req.URL).Msg("response body could not be read")
		d.finishFailure(out, start, err)
		return
	}

	if resp.StatusCode >= 400 {
		d.log.Warn().
			Int("status", resp.StatusCode).
			Str("url", req.URL).
			Msg("control request rejected by the API")
	} else {
		d.log.Info().
			Int("status", resp.StatusCode).
			Dur("latency", latency).
			Msg("control request delivered")
	}

	if d.collector != nil {
		d.collector.RecordSuccess(latency)
	}
	out <- Outcome{Kind: KindSuccess, Body: string(body)}
}

// finishFailure degrades a transport failure to a displayable outcome. The
// error is already logged; the presentation layer only sees the placeholder
// text.
func (d *Dispatcher) finishFailure(out chan<- Outcome, start time.Time, err error) {
	if d.collector != nil {
		d.collector.RecordFailure(time.Since(start), err)
	}
	out <- Outcome{Kind: KindSuccess, Body: NoResponseBody}
}

func (d *Dispatcher) finishCancelled(out chan<- Outcome, start time.Time) {
	if d.collector != nil {
		d.collector.RecordCancelled(time.Since(start))
	}
	out <- Outcome{Kind: KindCancelled}
}
