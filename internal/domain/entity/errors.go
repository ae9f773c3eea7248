package entity

import "fmt"

// ImageLoadError ошибка открытия или декодирования изображения
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}
