package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// ErrProfilerAddressRequired is returned when profiling is enabled without a server
var ErrProfilerAddressRequired = errors.New("profiler server address is required when profiling is enabled")

// ProfilerConfig configures continuous profiling to a Pyroscope server
type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	// MutexProfileFraction and BlockProfileRate enable the contention profiles when positive
	MutexProfileFraction int
	BlockProfileRate     int
}

// Profiler pushes CPU, heap and goroutine profiles. The zero value is a stopped no-op.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger

	mu      sync.Mutex
	stopped bool
}

// NewProfiler starts profiling, or returns a no-op profiler when disabled
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Profiler{logger: logger}
	if !cfg.Enabled {
		return p, nil
	}
	if cfg.ServerAddress == "" {
		return nil, ErrProfilerAddressRequired
	}
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = "backoffice"
	}

	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if cfg.MutexProfileFraction > 0 {
		runtime.SetMutexProfileFraction(cfg.MutexProfileFraction)
		types = append(types, pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration)
	}
	if cfg.BlockProfileRate > 0 {
		runtime.SetBlockProfileRate(cfg.BlockProfileRate)
		types = append(types, pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration)
	}

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{logger: logger.Named("pyroscope")},
		Tags:            tags,
		ProfileTypes:    types,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Continuous profiling started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
		zap.Int("profile_types", len(types)),
	)
	return p, nil
}

// Enabled reports whether profiles are being pushed
func (p *Profiler) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profiler != nil && !p.stopped
}

// LinkSpans labels CPU samples with the active span id so profiles can be
// opened from a trace. No-op unless both profiling and tracing are running.
func (p *Profiler) LinkSpans(providers *Providers) bool {
	if !p.Enabled() || providers == nil || providers.traces == nil {
		return false
	}
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(providers.traces))
	p.logger.Info("Span profiles enabled")
	return true
}

// Stop flushes pending profiles. Safe to call more than once.
func (p *Profiler) Stop() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true
	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Continuous profiling stopped")
	return nil
}

// Profiling label keys attached to request work
const (
	ProfilingLabelRoute  = "route"
	ProfilingLabelMethod = "method"
)

// WithProfilingLabels runs fn with labels attached to the samples it produces.
// Empty values are dropped; with no labels fn runs on ctx unchanged.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := make([]string, 0, len(labels)*2)
	for k, v := range labels {
		if v != "" {
			pairs = append(pairs, k, v)
		}
	}
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

type pyroscopeLogger struct {
	logger *zap.Logger
}

func (l pyroscopeLogger) Infof(format string, args ...any) {
	l.logger.Sugar().Debugf(format, args...)
}

func (l pyroscopeLogger) Debugf(format string, args ...any) {
	l.logger.Sugar().Debugf(format, args...)
}

func (l pyroscopeLogger) Errorf(format string, args ...any) {
	l.logger.Sugar().Errorf(format, args...)
}
