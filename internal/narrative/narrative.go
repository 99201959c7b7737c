// Package narrative is the boundary to the external prose-generation
// collaborator. The engine passes its structured analysis through and
// treats the returned text as opaque; generation runs off the
// deterministic path, timeout-bounded, and a failure degrades to the
// built-in template instead of failing the request.
package narrative

import (
	"context"

	"github.com/okian/offerlens/internal/domain/model"
)

// Generator produces free-text output from a finished analysis.
type Generator interface {
	// Analysis returns a prose assessment of the offer.
	Analysis(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error)

	// EmailDraft returns a negotiation email draft targeting the
	// realistic negotiation figure.
	EmailDraft(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error)
}
