package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"scamshield/internal/config"
	"scamshield/pkg/logger"
)

// NATSPublisher handles publishing events to NATS JetStream. A nil
// publisher is valid and drops every event, so callers do not need to
// branch on whether streaming is enabled.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	stream  jetstream.Stream
	subject string
	logger  *logger.Logger

	mu        sync.RWMutex
	connected bool
}

// NewNATSPublisher creates a new NATS publisher
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, log *logger.Logger) (*NATSPublisher, error) {
	log = log.WithComponent("nats")

	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.StreamName == "" {
		cfg.StreamName = "SCAMSHIELD_EVENTS"
	}
	if cfg.Subject == "" {
		cfg.Subject = "scamshield.analysis"
	}

	log.Info().Str("url", cfg.URL).Str("stream", cfg.StreamName).Msg("connecting to NATS")

	conn, err := nats.Connect(cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info().Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info().Msg("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamCfg := jetstream.StreamConfig{
		Name:        cfg.StreamName,
		Description: "ScamShield analysis events",
		Subjects:    []string{"scamshield.>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		MaxMsgs:     100000,
		MaxBytes:    100 * 1024 * 1024,
		Discard:     jetstream.DiscardOld,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
	}

	stream, err := js.CreateOrUpdateStream(ctx, streamCfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	log.Info().Str("stream", stream.CachedInfo().Config.Name).Msg("NATS stream ready")

	return &NATSPublisher{
		conn:      conn,
		js:        js,
		stream:    stream,
		subject:   cfg.Subject,
		logger:    log,
		connected: true,
	}, nil
}

// Close closes the NATS connection
func (p *NATSPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		p.conn.Close()
		p.connected = false
	}
}

// IsConnected returns whether NATS is connected
func (p *NATSPublisher) IsConnected() bool {
	if p == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected && p.conn.IsConnected()
}

// PublishAnalysis publishes an analysis event. Events are dropped
// silently when streaming is disabled or down; analysis never fails
// because the event bus did.
func (p *NATSPublisher) PublishAnalysis(ctx context.Context, event *AnalysisEvent) error {
	subject := fmt.Sprintf("%s.%s", p.subjectOrDefault(), event.RiskLevel)
	return p.publish(ctx, subject, event, func() {
		p.logger.Debug().
			Str("subject", subject).
			Int("score", event.RiskScore).
			Str("level", string(event.RiskLevel)).
			Msg("published analysis event")
	})
}

// PublishReport publishes a report-submitted event.
func (p *NATSPublisher) PublishReport(ctx context.Context, event *ReportEvent) error {
	subject := "scamshield.reports"
	return p.publish(ctx, subject, event, func() {
		p.logger.Debug().
			Str("subject", subject).
			Str("report_id", event.ReportID.String()).
			Msg("published report event")
	})
}

func (p *NATSPublisher) publish(ctx context.Context, subject string, event any, logged func()) error {
	if !p.IsConnected() {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logged()
	return nil
}

func (p *NATSPublisher) subjectOrDefault() string {
	if p == nil || p.subject == "" {
		return "scamshield.analysis"
	}
	return p.subject
}
