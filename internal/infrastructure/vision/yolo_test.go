package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"cornscan/internal/domain/entity"
)

// anchors: cx, cy, w, h, score0, score1
var testAnchors = [][]float32{
	{320, 320, 64, 64, 0.9, 0.1},
	{322, 322, 64, 64, 0.8, 0.05},
	{100, 100, 20, 20, 0.1, 0.2},
}

func channelsFirst(anchors [][]float32) []float32 {
	features := len(anchors[0])
	data := make([]float32, features*len(anchors))
	for i, a := range anchors {
		for f, v := range a {
			data[f*len(anchors)+i] = v
		}
	}
	return data
}

func anchorsFirst(anchors [][]float32) []float32 {
	var data []float32
	for _, a := range anchors {
		data = append(data, a...)
	}
	return data
}

func TestDecodeYOLO_ChannelsFirst(t *testing.T) {
	frame := newYoloFrame(1280, 640, 640)
	dets, err := decodeYOLO(channelsFirst(testAnchors), []int{1, 6, 3}, 2, frame, 0.25)
	require.NoError(t, err)
	require.Len(t, dets, 2)

	require.Equal(t, 0, dets[0].ClassID)
	require.InDelta(t, 0.9, dets[0].Confidence, 1e-6)
	require.Equal(t, entity.BoundingBox{X1: 576, Y1: 288, X2: 704, Y2: 352}, dets[0].Box)
}

func TestDecodeYOLO_AnchorsFirst(t *testing.T) {
	frame := newYoloFrame(640, 640, 640)
	dets, err := decodeYOLO(anchorsFirst(testAnchors), []int{1, 3, 6}, 2, frame, 0.25)
	require.NoError(t, err)
	require.Len(t, dets, 2)
	require.InDelta(t, 0.8, dets[1].Confidence, 1e-6)
	require.Equal(t, entity.BoundingBox{X1: 290, Y1: 290, X2: 354, Y2: 354}, dets[1].Box)
}

func TestDecodeYOLO_UnknownClassCount(t *testing.T) {
	// без числа классов большая ось считается осью якорей
	anchors := append([][]float32{}, testAnchors...)
	for i := 0; i < 4; i++ {
		anchors = append(anchors, make([]float32, 6))
	}
	frame := newYoloFrame(640, 640, 640)
	dets, err := decodeYOLO(channelsFirst(anchors), []int{1, 6, 7}, 0, frame, 0.15)
	require.NoError(t, err)
	require.Len(t, dets, 3)
	require.Equal(t, 1, dets[2].ClassID)
}

func TestDecodeYOLO_ClampsToImage(t *testing.T) {
	frame := newYoloFrame(640, 640, 640)
	anchors := [][]float32{{5, 630, 40, 40, 0.7}}
	dets, err := decodeYOLO(channelsFirst(anchors), []int{1, 5, 1}, 1, frame, 0.25)
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, entity.BoundingBox{X1: 0, Y1: 610, X2: 25, Y2: 640}, dets[0].Box)
}

func TestDecodeYOLO_BadShapes(t *testing.T) {
	frame := newYoloFrame(640, 640, 640)

	_, err := decodeYOLO(nil, []int{6, 3}, 2, frame, 0.25)
	require.Error(t, err)

	_, err = decodeYOLO(channelsFirst(testAnchors), []int{1, 7, 3}, 2, frame, 0.25)
	require.ErrorContains(t, err, "does not match")

	_, err = decodeYOLO(make([]float32, 4), []int{1, 6, 3}, 2, frame, 0.25)
	require.ErrorContains(t, err, "values")

	_, err = decodeYOLO(make([]float32, 12), []int{1, 4, 3}, 0, frame, 0.25)
	require.ErrorContains(t, err, "no class scores")
}

func TestNonMaxSuppression(t *testing.T) {
	box := entity.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10}
	shifted := entity.BoundingBox{X1: 1, Y1: 1, X2: 11, Y2: 11}
	far := entity.BoundingBox{X1: 50, Y1: 50, X2: 60, Y2: 60}

	in := []entity.RawDetection{
		{ClassID: 0, Confidence: 0.6, Box: shifted},
		{ClassID: 0, Confidence: 0.9, Box: box},
		{ClassID: 1, Confidence: 0.7, Box: shifted},
		{ClassID: 0, Confidence: 0.4, Box: far},
	}

	out := nonMaxSuppression(in, 0.5, 0)
	require.Len(t, out, 3)
	require.InDelta(t, 0.9, out[0].Confidence, 1e-9)
	require.Equal(t, 1, out[1].ClassID)
	require.Equal(t, far, out[2].Box)

	require.Len(t, nonMaxSuppression(in, 0.5, 1), 1)
	require.Len(t, nonMaxSuppression(in, 0.99, 0), 4)
}

func TestIoU(t *testing.T) {
	a := entity.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := entity.BoundingBox{X1: 5, Y1: 0, X2: 15, Y2: 10}
	require.InDelta(t, 50.0/150.0, iou(a, b), 1e-9)
	require.Equal(t, 1.0, iou(a, a))
	require.Zero(t, iou(a, entity.BoundingBox{X1: 20, Y1: 20, X2: 30, Y2: 30}))
	require.Zero(t, iou(entity.BoundingBox{}, entity.BoundingBox{}))
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{ModelPath: "m.onnx"}.withDefaults()
	require.Equal(t, DefaultInputSize, o.InputSize)
	require.Equal(t, DefaultConfidence, o.Confidence)
	require.Equal(t, DefaultIoUThreshold, o.IoUThreshold)
	require.Equal(t, DefaultMaxDetections, o.MaxDetections)

	o = Options{InputSize: 320, Confidence: 0.1, IoUThreshold: 0.45, MaxDetections: 5}.withDefaults()
	require.Equal(t, 320, o.InputSize)
	require.Equal(t, 0.1, o.Confidence)
}

func TestLetterbox_WideImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1280, 640))
	green := color.NRGBA{G: 200, A: 255}
	for x := 0; x < 1280; x++ {
		for y := 0; y < 640; y++ {
			src.SetNRGBA(x, y, green)
		}
	}

	boxed, frame := letterbox(src, 640)
	require.Equal(t, image.Pt(640, 640), boxed.Bounds().Size())
	require.Equal(t, letterboxFill, boxed.NRGBAAt(320, 10))
	require.Equal(t, letterboxFill, boxed.NRGBAAt(320, 630))
	require.Equal(t, green, boxed.NRGBAAt(320, 320))

	require.Equal(t, 2.0, frame.scaleX)
	require.Equal(t, 2.0, frame.scaleY)
	require.Equal(t, 0.0, frame.padX)
	require.Equal(t, 160.0, frame.padY)

	// рамка в центре входа возвращается в координаты исходного снимка
	dets, err := decodeYOLO(channelsFirst(testAnchors), []int{1, 6, 3}, 2, frame, 0.25)
	require.NoError(t, err)
	require.Equal(t, entity.BoundingBox{X1: 576, Y1: 256, X2: 704, Y2: 384}, dets[0].Box)
}

func TestLetterbox_SquareImageHasNoPadding(t *testing.T) {
	boxed, frame := letterbox(image.NewNRGBA(image.Rect(0, 0, 320, 320)), 640)
	require.Equal(t, image.Pt(640, 640), boxed.Bounds().Size())
	require.Zero(t, frame.padX)
	require.Zero(t, frame.padY)
	require.Equal(t, 0.5, frame.scaleX)
}
