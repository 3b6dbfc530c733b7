package pricing

import (
	"context"

	"github.com/google/uuid"
)

// Quote is the pricing engine's estimate for a prospective offer.
type Quote struct {
	SuggestedPrice float64 `json:"suggested_price"`
	Probability    float64 `json:"probability"`
}

// QuoteRequest carries the inputs the pricing engine evaluates.
type QuoteRequest struct {
	EventID  uuid.UUID
	Sections []string
	MaxPrice float64
	Quantity int
}

// Engine computes a suggested price and acceptance probability for an
// offer. It is a pure collaborator: no side effects on the core.
type Engine interface {
	Quote(ctx context.Context, req QuoteRequest) (Quote, error)
}

// heuristicEngine is the built-in estimator used when no external
// pricing service is configured. It nudges the buyer slightly below
// their ceiling and scales probability with headroom and section spread.
type heuristicEngine struct{}

func NewHeuristicEngine() Engine {
	return &heuristicEngine{}
}

func (e *heuristicEngine) Quote(_ context.Context, req QuoteRequest) (Quote, error) {
	suggested := req.MaxPrice * 0.95

	// Wider section preferences are easier to fill
	probability := 0.5
	if n := len(req.Sections); n > 1 {
		probability += 0.1 * float64(n-1)
	}
	if probability > 0.95 {
		probability = 0.95
	}

	return Quote{
		SuggestedPrice: suggested,
		Probability:    probability,
	}, nil
}
