package core

import (
	"context"
	"fmt"
	"time"

	"pkt.systems/codetribe/schema"
	"pkt.systems/pslog"
)

// Defaults applied by NormalizeDispatcherConfig.
const (
	// DefaultFaultRate is the probability that a successful handler
	// result is converted into a simulated runtime error.
	DefaultFaultRate = 0.1
	// DefaultLatencyMin is the lower bound of simulated latency.
	DefaultLatencyMin = 500 * time.Millisecond
	// DefaultLatencyMax is the exclusive upper bound of simulated latency.
	DefaultLatencyMax = 1500 * time.Millisecond
)

// simulatedFault is the error text injected into otherwise successful
// results.
const simulatedFault = "Simulated runtime error for demonstration"

// DispatcherConfig controls simulated latency and fault injection.
// The zero value is usable after NormalizeDispatcherConfig.
type DispatcherConfig struct {
	// FaultRate is the fault-injection probability in [0, 1].
	// Negative disables injection; zero means the default.
	FaultRate float64
	// LatencyMin and LatencyMax bound the simulated latency window.
	// Draws are uniform in [LatencyMin, LatencyMax).
	LatencyMin time.Duration
	LatencyMax time.Duration
}

// NormalizeDispatcherConfig fills zero fields with defaults and
// repairs an inverted latency window.
func NormalizeDispatcherConfig(cfg DispatcherConfig) DispatcherConfig {
	if cfg.FaultRate == 0 {
		cfg.FaultRate = DefaultFaultRate
	}
	if cfg.FaultRate < 0 {
		cfg.FaultRate = 0
	}
	if cfg.FaultRate > 1 {
		cfg.FaultRate = 1
	}
	if cfg.LatencyMin <= 0 {
		cfg.LatencyMin = DefaultLatencyMin
	}
	if cfg.LatencyMax <= cfg.LatencyMin {
		cfg.LatencyMax = cfg.LatencyMin + (DefaultLatencyMax - DefaultLatencyMin)
	}
	return cfg
}

// DispatcherDeps captures optional dependencies for the dispatcher.
type DispatcherDeps struct {
	Registry *Registry
	Rand     RandSource
	Logger   pslog.Logger
	// Now overrides the wall clock. Nil means time.Now.
	Now func() time.Time
	// Sleep overrides the latency suspension. Nil means a timer that
	// honors context cancellation.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Dispatcher turns execution requests into simulated results: it
// suspends for a latency drawn from the configured window, runs the
// language handler, then applies fault injection to successful
// results.
type Dispatcher struct {
	cfg      DispatcherConfig
	registry *Registry
	rng      RandSource
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	logger   pslog.Logger
}

// NewDispatcher constructs a dispatcher.
func NewDispatcher(cfg DispatcherConfig, deps DispatcherDeps) *Dispatcher {
	cfg = NormalizeDispatcherConfig(cfg)
	if deps.Registry == nil {
		deps.Registry = NewRegistry()
	}
	if deps.Rand == nil {
		deps.Rand = SystemRand()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sleep == nil {
		deps.Sleep = sleepContext
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Dispatcher{
		cfg:      cfg,
		registry: deps.Registry,
		rng:      deps.Rand,
		now:      deps.Now,
		sleep:    deps.Sleep,
		logger:   logger,
	}
}

// Registry returns the dispatcher's handler registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Execute runs one request to completion. It always returns a
// result; the error return is reserved for invalid requests.
func (d *Dispatcher) Execute(ctx context.Context, req schema.ExecutionRequest) (schema.ExecutionResult, error) {
	lang := schema.NormalizeLanguageID(req.Language)
	if err := schema.ValidateLanguageID(lang); err != nil {
		return schema.ExecutionResult{}, err
	}
	start := d.now()
	if err := ctx.Err(); err != nil {
		return d.canceled(start), nil
	}
	delay := d.drawLatency()
	if err := d.sleep(ctx, delay); err != nil {
		return d.canceled(start), nil
	}
	// The reported time covers the simulated latency only, not the
	// handler invocation.
	elapsed := d.now().Sub(start)
	result := d.run(lang, req.Code)
	if result.Success && d.cfg.FaultRate > 0 && d.rng.Float64() < d.cfg.FaultRate {
		result.Success = false
		result.Error = simulatedFault
		result.Output = fmt.Sprintf("Runtime Error: %s", simulatedFault)
	}
	result.ExecutionTime = elapsed
	d.logger.Debug("execution dispatched",
		"language", string(lang),
		"success", result.Success,
		"duration_ms", result.ExecutionTimeMillis())
	return result, nil
}

// drawLatency picks a duration uniformly in [LatencyMin, LatencyMax).
func (d *Dispatcher) drawLatency() time.Duration {
	window := d.cfg.LatencyMax - d.cfg.LatencyMin
	return d.cfg.LatencyMin + time.Duration(d.rng.Float64()*float64(window))
}

// run invokes the handler with panic containment so a misbehaving
// handler surfaces as a failed result instead of unwinding the caller.
func (d *Dispatcher) run(lang schema.LanguageID, code string) (result schema.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%v", r)
			result = schema.ExecutionResult{
				Success: false,
				Error:   msg,
				Output:  fmt.Sprintf("Execution failed: %s", msg),
			}
		}
	}()
	return d.registry.Resolve(lang)(code, d.rng)
}

func (d *Dispatcher) canceled(start time.Time) schema.ExecutionResult {
	return schema.ExecutionResult{
		Success:       false,
		Canceled:      true,
		Error:         "execution canceled",
		Output:        "Execution canceled",
		ExecutionTime: d.now().Sub(start),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
