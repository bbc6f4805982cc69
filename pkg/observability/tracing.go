package observability

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer emits X-Ray subsegments around the multi-write phases the SDK-level
// instrumentation cannot group on its own: the like transaction and the
// cascade fan-out. It degrades to a passthrough when no segment is active,
// so the same code path runs under Lambda, behind the plain HTTP binary, and
// in tests with a nil tracer.
type Tracer struct {
	serviceName string
}

// NewTracer creates a new tracer instance
func NewTracer(serviceName string) *Tracer {
	return &Tracer{
		serviceName: serviceName,
	}
}

// Capture runs fn inside a subsegment named after the service, recording
// fn's error on the subsegment before returning it unchanged.
func (t *Tracer) Capture(ctx context.Context, name string, fn func(context.Context) error) error {
	if t == nil || xray.GetSegment(ctx) == nil {
		return fn(ctx)
	}
	return xray.Capture(ctx, t.serviceName+"."+name, fn)
}

// AddAnnotation attaches an indexed annotation to the active segment, if any
func (t *Tracer) AddAnnotation(ctx context.Context, key, value string) {
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddAnnotation(key, value)
	}
}
