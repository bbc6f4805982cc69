package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_NilTracerRunsFunction(t *testing.T) {
	var tracer *Tracer

	called := false
	err := tracer.Capture(context.Background(), "like.transact", func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestCapture_NoActiveSegmentIsPassthrough(t *testing.T) {
	tracer := NewTracer("trustnet-backend")
	wantErr := errors.New("transaction failed")

	err := tracer.Capture(context.Background(), "cascade.batch", func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestAddAnnotation_NoActiveSegmentIsNoOp(t *testing.T) {
	var tracer *Tracer

	assert.NotPanics(t, func() {
		tracer.AddAnnotation(context.Background(), "threatId", "t-1")
	})
}
