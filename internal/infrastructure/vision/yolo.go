package vision

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"cornscan/internal/domain/entity"
)

const (
	DefaultInputSize     = 640
	DefaultConfidence    = 0.25
	DefaultIoUThreshold  = 0.7
	DefaultMaxDetections = 300
)

// Options параметры загрузки и запуска YOLO-модели.
type Options struct {
	ModelPath     string  // путь к ONNX-файлу
	NamesPath     string  // YAML с метками классов
	InputSize     int     // сторона квадратного входа сети
	Confidence    float64 // порог уверенности самой модели, до постобработки
	IoUThreshold  float64 // порог IoU для NMS
	MaxDetections int
	Letterbox     bool // вписывать изображение с полями вместо растяжения
}

func (o Options) withDefaults() Options {
	if o.InputSize <= 0 {
		o.InputSize = DefaultInputSize
	}
	if o.Confidence <= 0 {
		o.Confidence = DefaultConfidence
	}
	if o.IoUThreshold <= 0 {
		o.IoUThreshold = DefaultIoUThreshold
	}
	if o.MaxDetections <= 0 {
		o.MaxDetections = DefaultMaxDetections
	}
	return o
}

// letterboxFill цвет полей, как при обучении модели
var letterboxFill = color.NRGBA{R: 114, G: 114, B: 114, A: 255}

// yoloFrame геометрия перевода координат сети в координаты изображения
type yoloFrame struct {
	scaleX, scaleY float64
	padX, padY     float64 // поля во входных пикселях
	width, height  float64
}

func newYoloFrame(imgW, imgH, inputSize int) yoloFrame {
	return yoloFrame{
		scaleX: float64(imgW) / float64(inputSize),
		scaleY: float64(imgH) / float64(inputSize),
		width:  float64(imgW),
		height: float64(imgH),
	}
}

// letterbox вписывает изображение в квадрат size x size с сохранением пропорций
// и серыми полями по краям. Без этого на непрямоугольных снимках уверенности расходятся с обучением.
func letterbox(img image.Image, size int) (*image.NRGBA, yoloFrame) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	r := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := max(1, int(math.Round(float64(w)*r)))
	nh := max(1, int(math.Round(float64(h)*r)))
	padX, padY := (size-nw)/2, (size-nh)/2

	canvas := imaging.New(size, size, letterboxFill)
	resized := imaging.Resize(img, nw, nh, imaging.Linear)
	canvas = imaging.Paste(canvas, resized, image.Pt(padX, padY))

	return canvas, yoloFrame{
		scaleX: float64(w) / float64(nw),
		scaleY: float64(h) / float64(nh),
		padX:   float64(padX),
		padY:   float64(padY),
		width:  float64(w),
		height: float64(h),
	}
}

// decodeYOLO разбирает выход головы YOLOv8 формы [1, 4+nc, N] или [1, N, 4+nc].
// Каждая колонка: cx, cy, w, h во входных пикселях и оценки классов.
func decodeYOLO(data []float32, dims []int, numClasses int, frame yoloFrame, minConf float64) ([]entity.RawDetection, error) {
	if len(dims) != 3 || dims[0] != 1 {
		return nil, errors.Errorf("unexpected output shape %v", dims)
	}

	a, b := dims[1], dims[2]
	features, anchors, transposed := a, b, false
	switch {
	case numClasses > 0 && a == 4+numClasses:
	case numClasses > 0 && b == 4+numClasses:
		features, anchors, transposed = b, a, true
	case numClasses > 0:
		return nil, errors.Errorf("output shape %v does not match %d classes", dims, numClasses)
	case a > b:
		features, anchors, transposed = b, a, true
	}
	if features <= 4 {
		return nil, errors.Errorf("output shape %v has no class scores", dims)
	}
	if len(data) < features*anchors {
		return nil, errors.Errorf("output has %d values, want %d", len(data), features*anchors)
	}

	at := func(f, i int) float64 {
		if transposed {
			return float64(data[i*features+f])
		}
		return float64(data[f*anchors+i])
	}

	var out []entity.RawDetection
	for i := 0; i < anchors; i++ {
		classID, score := -1, 0.0
		for c := 4; c < features; c++ {
			if s := at(c, i); s > score {
				classID, score = c-4, s
			}
		}
		if classID < 0 || score < minConf {
			continue
		}

		cx, cy, w, h := at(0, i), at(1, i), at(2, i), at(3, i)
		out = append(out, entity.RawDetection{
			ClassID:    classID,
			Confidence: score,
			Box: entity.BoundingBox{
				X1: clamp((cx-w/2-frame.padX)*frame.scaleX, 0, frame.width),
				Y1: clamp((cy-h/2-frame.padY)*frame.scaleY, 0, frame.height),
				X2: clamp((cx+w/2-frame.padX)*frame.scaleX, 0, frame.width),
				Y2: clamp((cy+h/2-frame.padY)*frame.scaleY, 0, frame.height),
			},
		})
	}
	return out, nil
}

// nonMaxSuppression подавляет пересекающиеся рамки одного класса.
// Результат упорядочен по убыванию уверенности.
func nonMaxSuppression(dets []entity.RawDetection, iouThreshold float64, maxDet int) []entity.RawDetection {
	sorted := make([]entity.RawDetection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	suppressed := make([]bool, len(sorted))
	kept := make([]entity.RawDetection, 0, len(sorted))
	for i := range sorted {
		if suppressed[i] {
			continue
		}
		kept = append(kept, sorted[i])
		if maxDet > 0 && len(kept) == maxDet {
			break
		}
		for j := i + 1; j < len(sorted); j++ {
			if suppressed[j] || sorted[j].ClassID != sorted[i].ClassID {
				continue
			}
			if iou(sorted[i].Box, sorted[j].Box) > iouThreshold {
				suppressed[j] = true
			}
		}
	}
	return kept
}

func iou(a, b entity.BoundingBox) float64 {
	inter := entity.BoundingBox{
		X1: math.Max(a.X1, b.X1),
		Y1: math.Max(a.Y1, b.Y1),
		X2: math.Min(a.X2, b.X2),
		Y2: math.Min(a.Y2, b.Y2),
	}.Area()
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
