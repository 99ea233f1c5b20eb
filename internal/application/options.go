package application

import (
	"github.com/bnema/saveslots/internal/logging"
	"github.com/bnema/saveslots/internal/telemetry"
	"go.uber.org/zap"
)

const (
	// RemoteSessionsKey is the cloud key holding the serialized registry.
	RemoteSessionsKey = "PreservedSessions"
	// LocalSessionsKey is the local profile save key mirroring RemoteSessionsKey.
	LocalSessionsKey = "PRESERVED_SESSIONS"
)

type options struct {
	logger  *zap.Logger
	metrics *telemetry.Metrics
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNop(o.logger)
	return o
}
