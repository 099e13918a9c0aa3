// Package dispatch routes agent tasks to remote frontgen servers when one
// hosts the framework, falling back to in-process agents, and fans batches
// of tasks out in parallel.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/rpc"
)

// DefaultProbeTimeout bounds each agent card request during Detect.
const DefaultProbeTimeout = 500 * time.Millisecond

// Remote is a server that hosts agents.
type Remote struct {
	Endpoint string
	Card     *rpc.AgentCard
}

// Detect probes every endpoint's agent card concurrently and maps each
// specialization to the first endpoint, in argument order, that hosts it.
// Unreachable endpoints are logged and skipped.
func Detect(ctx context.Context, endpoints []string, timeout time.Duration, logger *slog.Logger) map[agent.Specialization]Remote {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	cards := make([]*rpc.AgentCard, len(endpoints))

	var wg sync.WaitGroup
	for i, ep := range endpoints {
		wg.Go(func() {
			probeCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			card, err := rpc.NewClient(ep, rpc.WithTimeout(timeout)).DiscoverAgents(probeCtx)
			if err != nil {
				logger.Warn("remote agent server unreachable", "endpoint", ep, "error", err)
				return
			}
			cards[i] = card
		})
	}
	wg.Wait()

	out := make(map[agent.Specialization]Remote)
	for i, card := range cards {
		if card == nil {
			continue
		}
		for _, e := range card.Agents {
			if _, taken := out[e.Specialization]; !taken {
				out[e.Specialization] = Remote{Endpoint: endpoints[i], Card: card}
			}
		}
	}
	logger.Debug("remote agents detected", "endpoints", len(endpoints), "specializations", len(out))
	return out
}
