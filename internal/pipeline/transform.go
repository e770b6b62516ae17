package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/observability"
)

// EventDecoder decodes a source-topic message into a report.
// *domain.Decoder implements it.
type EventDecoder interface {
	DecodeEvent(raw domain.RawEvent) (domain.DecodedReport, error)
}

// ReportTransformer implements Transformer on top of an EventDecoder and
// counts decoded groups by kind.
type ReportTransformer struct {
	decoder EventDecoder
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(decoder EventDecoder, metrics *observability.Metrics, logger *slog.Logger) *ReportTransformer {
	return &ReportTransformer{
		decoder: decoder,
		metrics: metrics,
		logger:  logger,
	}
}

func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.DecodedReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.DecodedReport{}, err
	}

	report, err := t.decoder.DecodeEvent(raw)
	if err != nil {
		return domain.DecodedReport{}, err
	}

	for _, tok := range report.Tokens {
		t.metrics.TokensDecoded.WithLabelValues(tok.Kind).Inc()
	}
	if n := len(report.Unparsed); n > 0 {
		t.metrics.TokensDecoded.WithLabelValues("unparsed").Add(float64(n))
		t.logger.Debug("report has unparsed groups",
			"station", report.Station,
			"unparsed", report.Unparsed,
			"offset", raw.Offset,
		)
	}
	return report, nil
}
