// Package shock builds OpenShock control requests from validated settings.
package shock

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"shocklink/internal/config"
)

// TokenHeader carries the OpenShock API token on control requests.
const TokenHeader = "OpenShockToken"

const controlPath = "/2/shockers/control"

// IntSource yields uniform integers in [0, n). *math/rand.Rand satisfies it;
// tests inject fixed sources to pin the drawn values.
type IntSource interface {
	Intn(n int) int
}

// Request is a single-use OpenShock control call, ready for dispatch. The
// drawn intensity and duration are kept alongside the serialized body so the
// caller can present them before the network round trip finishes.
type Request struct {
	URL        string
	Headers    http.Header
	Body       []byte
	Intensity  int
	DurationMs int
}

// Builder assembles randomized control requests. Pure and synchronous; it
// assumes fully validated settings and performs no I/O.
type Builder struct {
	src IntSource
}

// NewBuilder returns a Builder drawing from src. A nil src means every Build
// call seeds a fresh source, so repeated triggers are independently random.
func NewBuilder(src IntSource) *Builder {
	return &Builder{src: src}
}

func (b *Builder) Build(s *config.Settings) (*Request, error) {
	src := b.src
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	intensity := drawBetween(src, s.MinIntensity, s.MaxIntensity)
	durationMs := drawBetween(src, s.MinDuration, s.MaxDuration)

	body, err := json.Marshal(controlBody{
		Shocks: []controlShock{{
			ID:        s.ShockerID,
			Type:      "Shock",
			Intensity: intensity,
			Duration:  durationMs,
			Exclusive: true,
		}},
		CustomName: s.CustomName,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal control body: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("accept", "application/json")
	headers.Set(TokenHeader, s.Token)

	return &Request{
		URL:        fmt.Sprintf("https://%s%s", s.EndpointDomain, controlPath),
		Headers:    headers,
		Body:       body,
		Intensity:  intensity,
		DurationMs: durationMs,
	}, nil
}

// drawBetween picks uniformly from the closed interval [min, max].
func drawBetween(src IntSource, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

type controlShock struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Intensity int    `json:"intensity"`
	Duration  int    `json:"duration"`
	Exclusive bool   `json:"exclusive"`
}

type controlBody struct {
	Shocks     []controlShock `json:"shocks"`
	CustomName string         `json:"customName"`
}
