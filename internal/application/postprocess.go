package app

import (
	"github.com/samber/lo"

	"cornscan/internal/domain/entity"
)

// Postprocessor фильтрует или изменяет набор детекций.
type Postprocessor func([]entity.Detection) []entity.Detection

// NewScoreFilter оставляет детекции с уверенностью не ниже conf.
func NewScoreFilter(conf float64) Postprocessor {
	return func(in []entity.Detection) []entity.Detection {
		return lo.Filter(in, func(d entity.Detection, _ int) bool {
			return d.Confidence >= conf
		})
	}
}
