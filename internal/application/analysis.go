package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"cornscan/internal/domain/entity"
	"cornscan/internal/domain/port"
)

const msgProcessingError = "Error processing image: %s"

// AnalysisService загружает изображение, запускает модель и выбирает итог.
type AnalysisService struct {
	loader   port.ImageLoader
	model    port.Model
	selector *Selector
	logger   *zap.SugaredLogger
}

// NewAnalysisService создаёт сервис анализа. Модель загружается заранее и передаётся готовой.
func NewAnalysisService(loader port.ImageLoader, model port.Model, selector *Selector, logger *zap.SugaredLogger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AnalysisService{
		loader:   loader,
		model:    model,
		selector: selector,
		logger:   logger,
	}
}

// AnalyzeImage классифицирует одно изображение.
// Ошибки загрузки и инференса превращаются в Outcome со статусом error и наружу не выходят.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, path string) (out entity.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("analysis panicked", "path", path, "panic", r)
			out = entity.Failed(fmt.Sprintf(msgProcessingError, fmt.Sprint(r)))
		}
	}()

	detections, err := s.detect(ctx, path)
	if err != nil {
		s.logger.Warnw("image processing failed", "path", path, "error", err)
		return entity.Failed(fmt.Sprintf(msgProcessingError, err.Error()))
	}

	out = s.selector.Select(detections)
	s.logger.Infow("image analyzed",
		"path", path,
		"status", out.Status,
		"confidence", out.Confidence,
	)
	return out
}

// detect загружает изображение и переводит индексы классов модели в метки.
func (s *AnalysisService) detect(ctx context.Context, path string) ([]entity.Detection, error) {
	if s.loader == nil {
		return nil, errors.New("image loader is not configured")
	}
	if s.model == nil {
		return nil, errors.New("detector is not configured")
	}

	img, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}
	size := img.Bounds().Size()
	s.logger.Debugw("image loaded", "path", path, "width", size.X, "height", size.Y)

	raw, err := s.model.Infer(ctx, img)
	if err != nil {
		return nil, errors.Wrap(err, "run inference")
	}

	detections := make([]entity.Detection, 0, len(raw))
	for _, r := range raw {
		detections = append(detections, entity.Detection{
			Label:      s.model.LabelFor(r.ClassID),
			Confidence: r.Confidence,
			Box:        r.Box,
		})
	}
	s.logger.Debugw("inference finished", "path", path, "detections", len(detections))

	return detections, nil
}
