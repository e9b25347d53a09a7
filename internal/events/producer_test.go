package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Without a broker configured the producer must be a silent no-op, so the
// flows and their tests never depend on Kafka being up.
func TestZeroValueProducerIsNoOp(t *testing.T) {
	var p *Producer
	require.NoError(t, p.PublishEvent(context.Background(), "k", map[string]any{"type": "x"}))
	require.NoError(t, p.Close())

	p = &Producer{}
	require.NoError(t, p.PublishEvent(context.Background(), "k", map[string]any{"type": "x"}))
	require.NoError(t, p.Close())
}
