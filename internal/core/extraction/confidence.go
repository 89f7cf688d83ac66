package extraction

import "invoice-reconciler/internal/core/domain"

// Confidence bounds. Scores live in [80, 100) on a percentage scale.
const (
	confidenceFloor = 80.0
	confidenceCeil  = 99.5
)

// Confidence estimates extraction quality from how many field cascades
// matched. Each matched field contributes equally; a candidate with every
// field matched scores at the ceiling, a fully-empty one at the floor.
func Confidence(c domain.ExtractionCandidate) float64 {
	const totalFields = 4
	score := confidenceFloor + (confidenceCeil-confidenceFloor)*float64(c.MatchedFields())/totalFields
	if score < confidenceFloor {
		return confidenceFloor
	}
	if score > confidenceCeil {
		return confidenceCeil
	}
	return score
}
