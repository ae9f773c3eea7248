//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"cornscan/internal/domain/entity"
	"cornscan/internal/domain/port"
)

// YOLODetector запускает YOLO-модель в формате ONNX через OpenCV DNN.
type YOLODetector struct {
	classNames
	opts   Options
	net    gocv.Net
	mu     sync.Mutex // gocv.Net не потокобезопасен
	logger *zap.SugaredLogger
}

// NewYOLODetector загружает метки классов и веса модели.
// Ошибка загрузки фатальна для процесса.
func NewYOLODetector(opts Options, logger *zap.SugaredLogger) (*YOLODetector, error) {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	names, err := LoadClassNames(opts.NamesPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "model file %s", opts.ModelPath)
	}

	net := gocv.ReadNetFromONNX(opts.ModelPath)
	if net.Empty() {
		return nil, errors.Errorf("failed to load network from %s", opts.ModelPath)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, errors.Wrap(err, "set preferable backend")
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, errors.Wrap(err, "set preferable target")
	}

	logger.Infow("detection network initialized", "model", opts.ModelPath, "classes", len(names))

	return &YOLODetector{
		classNames: classNames(names),
		opts:       opts,
		net:        net,
		logger:     logger,
	}, nil
}

// Infer возвращает детекции после NMS в координатах исходного изображения.
func (d *YOLODetector) Infer(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("empty image")
	}

	size := d.opts.InputSize
	frame := newYoloFrame(img.Bounds().Dx(), img.Bounds().Dy(), size)
	if d.opts.Letterbox {
		img, frame = letterbox(img, size)
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, errors.Wrap(err, "convert image to mat")
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	// после letterbox изображение уже size x size, иначе BlobFromImage растягивает его
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "read network output")
	}

	candidates, err := decodeYOLO(data, output.Size(), len(d.classNames), frame, d.opts.Confidence)
	if err != nil {
		return nil, err
	}

	dets := nonMaxSuppression(candidates, d.opts.IoUThreshold, d.opts.MaxDetections)
	d.logger.Debugw("network forward done", "candidates", len(candidates), "detections", len(dets))
	return dets, nil
}

// Close освобождает сеть.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

// Проверка реализации интерфейса
var _ port.Model = (*YOLODetector)(nil)
