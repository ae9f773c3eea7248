package entity

// BoundingBox прямоугольник детекции в пикселях исходного изображения
type BoundingBox struct {
	X1 float64 // левый край
	Y1 float64 // верхний край
	X2 float64 // правый край
	Y2 float64 // нижний край
}

// Width возвращает ширину рамки
func (b BoundingBox) Width() float64 {
	return b.X2 - b.X1
}

// Height возвращает высоту рамки
func (b BoundingBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Area возвращает площадь рамки, для вырожденной рамки 0
func (b BoundingBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center возвращает координаты центра рамки
func (b BoundingBox) Center() (x, y float64) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// RawDetection сырой результат модели: индекс класса ещё не переведён в метку
type RawDetection struct {
	ClassID    int
	Confidence float64
	Box        BoundingBox
}

// Detection объект, найденный моделью на изображении
type Detection struct {
	Label      string      // метка класса модели, например "healthy"
	Confidence float64     // уверенность в диапазоне [0, 1]
	Box        BoundingBox // рамка x1,y1,x2,y2
}
