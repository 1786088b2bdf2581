package main

import (
	"context"

	"github.com/user/grades_analyzer_go/internal/config"
	"github.com/user/grades_analyzer_go/internal/grades"
	"github.com/user/grades_analyzer_go/internal/logging"

	"go.uber.org/zap"
)

// App runs the fixed load, impute, visualize sequence.
type App struct {
	cfg config.Config
}

// NewApp creates a new App application struct
func NewApp(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// Run executes every step even if an earlier one failed; each step guards
// against a missing table on its own.
func (a *App) Run(ctx context.Context) {
	logger := logging.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("grades analysis recover panic error!", zap.Any("err", r),
				zap.String("panic info", logging.GetPanicInfo()))
		}
	}()

	logger.Info("Loading grades", zap.String("file", a.cfg.Input.Path))
	reader := grades.NewGradesReader(a.cfg.Input.Path,
		grades.WithConfig(a.cfg),
		grades.WithLogger(logger),
	)

	logger.Info("Imputing missing values")
	reader.Impute()

	logger.Info("Rendering scatter plot", zap.String("path", a.cfg.Output.ImagePath))
	reader.Visualize()
}
