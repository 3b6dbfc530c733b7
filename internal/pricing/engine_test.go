package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicEngine_Quote(t *testing.T) {
	engine := NewHeuristicEngine()

	quote, err := engine.Quote(context.Background(), QuoteRequest{
		EventID:  uuid.New(),
		Sections: []string{"GA"},
		MaxPrice: 100.0,
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.InDelta(t, 95.0, quote.SuggestedPrice, 1e-9)
	assert.Equal(t, 0.5, quote.Probability)
}

func TestHeuristicEngine_ProbabilityScalesWithSections(t *testing.T) {
	engine := NewHeuristicEngine()

	narrow, err := engine.Quote(context.Background(), QuoteRequest{
		Sections: []string{"GA"},
		MaxPrice: 100.0,
		Quantity: 1,
	})
	require.NoError(t, err)

	wide, err := engine.Quote(context.Background(), QuoteRequest{
		Sections: []string{"GA", "Balcony", "Floor", "Mezzanine"},
		MaxPrice: 100.0,
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Greater(t, wide.Probability, narrow.Probability)
	assert.LessOrEqual(t, wide.Probability, 0.95)
}
