package client

//go:generate mockgen -source=interface.go -destination=mocks/mock_interface.go -package=mock_client

import (
	"context"

	"github.com/menta2k/collage-kit/pkg/types"
)

// VisionClient is a vision model that can locate the subject of an encoded
// panel image
type VisionClient interface {
	SimpleQuery(ctx context.Context, model, prompt string, image []byte) (string, error)
	AnalyzeImage(ctx context.Context, model, prompt string, image []byte) (*types.AnalysisResult, error)
}
