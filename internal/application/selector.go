package app

import (
	"fmt"

	"github.com/samber/lo"

	"cornscan/internal/domain/entity"
)

// DefaultConfidenceThreshold минимальная уверенность, с которой детекция учитывается.
const DefaultConfidenceThreshold = 0.5

const (
	msgNoDetection = "No corn leaf or disease detected in the image. Please upload a clear image of a corn leaf."
	msgUnsupported = "Detected disease (%s) is not in our supported list. Please upload an image of corn leaves with MSV, MLN, or healthy corn."
	msgDetected    = "Detected %s with %.1f%% confidence"
)

// Selector превращает детекции одного изображения в один Outcome.
// Не хранит состояния между вызовами.
type Selector struct {
	whitelist entity.Whitelist
	filter    Postprocessor
}

// NewSelector создаёт селектор с порогом уверенности threshold.
func NewSelector(whitelist entity.Whitelist, threshold float64) *Selector {
	return &Selector{
		whitelist: whitelist,
		filter:    NewScoreFilter(threshold),
	}
}

// Select отбрасывает слабые детекции, берёт самую уверенную и сверяет её метку с whitelist.
// При равной уверенности побеждает первая встреченная.
func (s *Selector) Select(detections []entity.Detection) entity.Outcome {
	kept := s.filter(detections)
	if len(kept) == 0 {
		return entity.Rejected(msgNoDetection, 0)
	}

	best := lo.MaxBy(kept, func(a, b entity.Detection) bool {
		return a.Confidence > b.Confidence
	})

	// Уверенность отказа здесь берётся из детекции, а не 0 как выше.
	name, ok := s.whitelist.Lookup(best.Label)
	if !ok {
		return entity.Rejected(fmt.Sprintf(msgUnsupported, best.Label), best.Confidence)
	}

	return entity.Success(name, best.Confidence, fmt.Sprintf(msgDetected, name, best.Confidence*100))
}
