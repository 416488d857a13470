package querysync

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	qerrors "github.com/vango-dev/querystate/internal/errors"
	"github.com/vango-dev/querystate/pkg/querycodec"
)

// Update is a partial set of field writes. Undefined values are skipped,
// null values delete.
type Update map[string]querycodec.Value

// Binding ties a field mapping to a provider. It is cheap; bind once per
// call site.
type Binding struct {
	p       *Provider
	mapping *querycodec.Mapping
}

// Mapping returns the bound field mapping.
func (b *Binding) Mapping() *querycodec.Mapping {
	return b.mapping
}

// Values decodes the current URL and overlays buffered deferred writes for
// the bound fields, so a field shows its latest input before the URL
// catches up. A buffered clear reads as undefined.
//
// The only error is querycodec.ErrMissingRequiredField.
func (b *Binding) Values() (querycodec.Values, error) {
	raw, buffered := b.p.snapshot()
	values, err := querycodec.Decode(raw, b.mapping)
	if err != nil {
		_, span := b.p.tracer.Start(context.Background(), "querysync.Values")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()

		code := "unknown"
		var qe *qerrors.QueryError
		if errors.As(err, &qe) {
			code = qe.Code
		}
		b.p.metrics.recordDecodeError(code)
		return nil, err
	}

	for name, v := range buffered {
		if _, declared := b.mapping.Kind(name); !declared {
			continue
		}
		if v.IsNull() {
			v = querycodec.Undefined()
		}
		values[name] = v
	}
	return values, nil
}

// Update applies u. Fields of a deferred kind are buffered unless
// Immediate() is passed; everything else is written to the URL in a single
// shallow navigation. Fields missing from the mapping are ignored.
func (b *Binding) Update(u Update, opts ...UpdateOption) {
	var cfg updateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	_, span := b.p.tracer.Start(context.Background(), "querysync.Update")
	defer span.End()

	var (
		writes []write
		staged = make(map[string]pending)
	)
	for name, v := range u {
		kind, ok := b.mapping.Kind(name)
		if !ok {
			b.p.logger.Debug("ignoring update to undeclared field", "field", name)
			continue
		}
		if v.IsUndefined() {
			continue
		}
		if cfg.immediate || !kind.Deferred() {
			writes = append(writes, write{name: name, kind: kind, value: v})
			continue
		}
		staged[name] = pending{kind: kind, value: v}
	}

	if len(staged) > 0 {
		b.p.stage(staged)
	}

	navigated := false
	if len(writes) > 0 {
		navigated = b.p.writeImmediate(writes)
	}

	span.SetAttributes(
		attribute.Int("querystate.fields", len(u)),
		attribute.Int("querystate.immediate", len(writes)),
		attribute.Int("querystate.deferred", len(staged)),
		attribute.Bool("querystate.navigated", navigated),
	)
}

// Reset removes every query parameter and empties the shared buffer.
func (b *Binding) Reset() {
	b.p.Reset()
}
