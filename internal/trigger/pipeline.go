// Package trigger wires the death-event pipeline: load and validate the
// OpenShock settings, build a randomized control request, dispatch it, and
// surface every outcome as an in-game popup.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"shocklink/internal/config"
	"shocklink/internal/dispatch"
	"shocklink/internal/host"
	"shocklink/internal/metrics"
	"shocklink/internal/shock"
)

const popupTitle = "Message"

// Dispatcher abstracts the network stage so tests can script outcomes.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *shock.Request) <-chan dispatch.Outcome
}

// Options configure a Pipeline.
type Options struct {
	Loader     *config.Loader
	Builder    *shock.Builder
	Dispatcher Dispatcher
	Presenter  host.Presenter
	Pauser     host.Pauser
	Collector  *metrics.Collector
	Cooldown   time.Duration // minimum interval between shocks; 0 disables
	Logger     zerolog.Logger
}

// Pipeline executes one full trigger per death event. Config-stage errors are
// terminal for that trigger and always resolve to a popup; nothing hangs and
// nothing is retried.
type Pipeline struct {
	loader    *config.Loader
	builder   *shock.Builder
	disp      Dispatcher
	presenter host.Presenter
	pauser    host.Pauser
	collector *metrics.Collector
	limiter   *rate.Limiter
	log       zerolog.Logger
}

func New(opt Options) *Pipeline {
	var limiter *rate.Limiter
	if opt.Cooldown > 0 {
		limiter = rate.NewLimiter(rate.Every(opt.Cooldown), 1)
	}
	return &Pipeline{
		loader:    opt.Loader,
		builder:   opt.Builder,
		disp:      opt.Dispatcher,
		presenter: opt.Presenter,
		pauser:    opt.Pauser,
		collector: opt.Collector,
		limiter:   limiter,
		log:       opt.Logger,
	}
}

// Run consumes death events until ctx is done.
func (p *Pipeline) Run(ctx context.Context, deaths <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-deaths:
			p.HandleDeath(ctx)
		}
	}
}

// HandleDeath executes one trigger. The call returns as soon as the request
// is submitted; outcomes are forwarded to the presenter from a goroutine
// scoped to this trigger alone.
func (p *Pipeline) HandleDeath(ctx context.Context) {
	log := p.log.With().Str("trigger", ulid.Make().String()).Logger()

	if p.limiter != nil && !p.limiter.Allow() {
		log.Info().Msg("trigger suppressed by cooldown")
		if p.collector != nil {
			p.collector.RecordSuppressed()
		}
		return
	}

	p.pauser.Pause()
	p.presenter.Popup(popupTitle, "Shocking...")

	settings, err := p.loader.Load()
	if err != nil {
		log.Error().Err(err).Msg("settings rejected")
		p.presenter.Popup(popupTitle, userMessage(err))
		return
	}

	req, err := p.builder.Build(settings)
	if err != nil {
		log.Error().Err(err).Msg("control request could not be built")
		p.presenter.Popup(popupTitle, "Error: could not build the shock request.")
		return
	}

	log.Info().
		Int("intensity", req.Intensity).
		Int("durationMs", req.DurationMs).
		Str("url", req.URL).
		Msg("dispatching shock")
	p.presenter.Popup(popupTitle, fmt.Sprintf("Duration: %ds     Intensity: %d", req.DurationMs/1000, req.Intensity))

	outcomes := p.disp.Dispatch(ctx, req)
	go p.consume(log, outcomes)
}

func (p *Pipeline) consume(log zerolog.Logger, outcomes <-chan dispatch.Outcome) {
	for o := range outcomes {
		switch o.Kind {
		case dispatch.KindProgress:
			log.Info().Float64("percent", o.Percent).Msg("request in progress")
		case dispatch.KindSuccess:
			p.presenter.Popup(popupTitle, displayText(o.Body))
		case dispatch.KindCancelled:
			log.Warn().Msg("request was cancelled")
			p.presenter.Popup(popupTitle, "Request was cancelled.")
		}
	}
}

// userMessage maps a load failure to its popup text. Unexpected error types
// get the generic invalid-config guidance.
func userMessage(err error) string {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return cfgErr.UserMessage()
	}
	return "Error: Invalid config file! Read readme.txt in the mod's config folder."
}

// displayText prefers the message field of an OpenShock JSON response body
// over the raw text, which is usually a problem document.
func displayText(body string) string {
	if msg := gjson.Get(body, "message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return body
}
