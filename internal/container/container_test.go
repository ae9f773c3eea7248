package container

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"cornscan/internal/domain/entity"
)

type stubLoader struct{}

func (stubLoader) Load(path string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

type stubModel struct{ closed bool }

func (m *stubModel) Infer(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	return []entity.RawDetection{{ClassID: 0, Confidence: 0.92}}, nil
}

func (m *stubModel) LabelFor(classID int) string { return "healthy" }

func (m *stubModel) Classes() []string { return []string{"healthy"} }

func (m *stubModel) Close() error {
	m.closed = true
	return nil
}

func TestContainer_Wiring(t *testing.T) {
	model := &stubModel{}
	c := New(stubLoader{}, model, entity.DefaultWhitelist(), 0.5, nil)

	out := c.AnalysisService.AnalyzeImage(context.Background(), "leaf.jpg")
	require.Equal(t, entity.StatusSuccess, out.Status)
	require.Equal(t, "Healthy Corn", out.Disease)

	require.NoError(t, c.Close())
	require.True(t, model.closed)
}

func TestContainer_CloseWithoutModel(t *testing.T) {
	c := New(stubLoader{}, nil, entity.DefaultWhitelist(), 0.5, nil)
	require.NoError(t, c.Close())
}
