package port

import (
	"context"
	"image"

	"cornscan/internal/domain/entity"
)

// Model интерфейс предобученного детектора
type Model interface {
	// Infer запускает модель на изображении и возвращает найденные объекты
	Infer(ctx context.Context, img image.Image) ([]entity.RawDetection, error)

	// LabelFor возвращает метку класса по его индексу
	LabelFor(classID int) string

	// Classes возвращает метки всех классов модели по порядку индексов
	Classes() []string

	// Close освобождает ресурсы модели
	Close() error
}
