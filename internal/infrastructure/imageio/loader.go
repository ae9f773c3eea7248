package imageio

import (
	"image"
	_ "image/gif" // регистрация декодеров
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"cornscan/internal/domain/entity"
	"cornscan/internal/domain/port"
)

// FileLoader читает изображения с диска.
type FileLoader struct {
	// AutoOrient поворачивает изображение по EXIF-тегу ориентации.
	AutoOrient bool
}

// NewFileLoader создаёт загрузчик с учётом EXIF-ориентации.
func NewFileLoader() *FileLoader {
	return &FileLoader{AutoOrient: true}
}

// Load открывает файл и декодирует его в image.Image.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, &entity.ImageLoadError{Path: path, Err: errors.New("empty path")}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(l.AutoOrient))
	if err != nil {
		return nil, &entity.ImageLoadError{Path: path, Err: err}
	}

	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &entity.ImageLoadError{Path: path, Err: errors.New("empty image")}
	}

	return img, nil
}

// Проверка реализации интерфейса
var _ port.ImageLoader = (*FileLoader)(nil)
