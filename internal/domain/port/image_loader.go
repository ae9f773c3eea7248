package port

import "image"

// ImageLoader интерфейс загрузчика изображений
type ImageLoader interface {
	// Load открывает и декодирует файл. Ошибка имеет тип *entity.ImageLoadError
	Load(path string) (image.Image, error)
}
