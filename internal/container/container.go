package container

import (
	"go.uber.org/zap"

	app "cornscan/internal/application"
	"cornscan/internal/domain/entity"
	"cornscan/internal/domain/port"
)

type Container struct {
	Model           port.Model
	Selector        *app.Selector
	AnalysisService *app.AnalysisService
}

// New собирает сервисы приложения вокруг уже загруженной модели.
func New(loader port.ImageLoader, model port.Model, whitelist entity.Whitelist, threshold float64, logger *zap.SugaredLogger) *Container {
	selector := app.NewSelector(whitelist, threshold)
	analysisService := app.NewAnalysisService(loader, model, selector, logger)

	return &Container{
		Model:           model,
		Selector:        selector,
		AnalysisService: analysisService,
	}
}

// Close освобождает модель.
func (c *Container) Close() error {
	if c.Model == nil {
		return nil
	}
	return c.Model.Close()
}
