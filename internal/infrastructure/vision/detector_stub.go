//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"cornscan/internal/domain/entity"
	"cornscan/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// YOLODetector заглушка для сборки без OpenCV.
type YOLODetector struct {
	classNames
}

// NewYOLODetector проверяет файл классов и возвращает ошибку: без тега gocv модель не загрузить.
func NewYOLODetector(opts Options, logger *zap.SugaredLogger) (*YOLODetector, error) {
	_ = logger
	if _, err := LoadClassNames(opts.withDefaults().NamesPath); err != nil {
		return nil, err
	}
	return nil, errNoGoCV
}

// Infer возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Infer(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	_ = ctx
	_ = img
	return nil, errNoGoCV
}

// Close ничего не делает.
func (d *YOLODetector) Close() error {
	return nil
}

// Проверка реализации интерфейса
var _ port.Model = (*YOLODetector)(nil)
