// Package grades holds the exam grades reader: it loads one grades table,
// fills its missing values and renders the total score scatter plot.
//
// Every operation reports problems as a one-line message on the reader's
// output and returns normally, so callers can run the steps in sequence
// without checking anything between them.
package grades

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/user/grades_analyzer_go/internal/analysis"
	"github.com/user/grades_analyzer_go/internal/config"
	"github.com/user/grades_analyzer_go/internal/parser"
	"github.com/user/grades_analyzer_go/internal/report"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Messages printed on the reader's output.
const (
	msgFileNotFound    = "Error: File not found"
	msgFileFormat      = "Error: File format is not correct"
	msgNoGrades        = "No Grades Found"
	msgNoGradesLower   = "No grades found"
	msgNoTotalGradeCol = "Error: No total grade column (index 5) found"
)

// GradesReader owns the grades table of a single file.
type GradesReader struct {
	Filename string

	cfg    config.Config
	out    io.Writer
	logger *zap.Logger
	grades *mat.Dense
}

// Option configures a GradesReader.
type Option func(*GradesReader)

// WithConfig replaces the default configuration. Its input path is ignored;
// the filename passed to NewGradesReader wins.
func WithConfig(cfg config.Config) Option {
	return func(r *GradesReader) { r.cfg = cfg }
}

// WithOutput sets where diagnostic messages are printed (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *GradesReader) { r.out = w }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *GradesReader) { r.logger = logger }
}

// NewGradesReader loads filename. On failure a message is printed and the
// reader is returned without a table.
func NewGradesReader(filename string, opts ...Option) *GradesReader {
	r := &GradesReader{
		Filename: filename,
		cfg:      config.Default(),
		out:      os.Stdout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.load()
	return r
}

func (r *GradesReader) load() {
	grades, err := parser.ParseGradesFile(r.Filename, r.cfg.Input.Delimiter)
	if err != nil {
		r.logger.Error("load grades failed", zap.String("file", r.Filename), zap.Error(err))
		switch {
		case errors.Is(err, parser.ErrFileNotFound):
			r.println(msgFileNotFound)
		case errors.Is(err, parser.ErrFileFormat):
			r.println(msgFileFormat)
		default:
			r.println(err.Error())
		}
		r.grades = nil
		return
	}

	rows, cols := grades.Dims()
	r.logger.Info("grades loaded", zap.String("file", r.Filename), zap.Int("rows", rows), zap.Int("cols", cols))
	r.grades = grades
}

// Grades returns the table, or nil if loading failed.
func (r *GradesReader) Grades() *mat.Dense {
	return r.grades
}

// Impute replaces each missing value with the mean of its column's present
// values. A column with no present values stays missing.
func (r *GradesReader) Impute() {
	if r.grades == nil {
		r.println(msgNoGrades)
		return
	}

	for _, c := range analysis.ImputeColumnMeans(r.grades) {
		r.logger.Info("column imputed", zap.Int("column", c.Column), zap.Int("filled", c.Filled), zap.Float64("mean", c.Mean))
	}
}

// averageTotalGrade is the mean of the total grade column.
func (r *GradesReader) averageTotalGrade() (float64, bool) {
	if r.grades == nil {
		r.println(msgNoGradesLower)
		return 0, false
	}
	if _, cols := r.grades.Dims(); cols <= parser.TotalGradeColumn {
		r.println(msgNoTotalGradeCol)
		return 0, false
	}
	return analysis.ColumnMean(r.grades, parser.TotalGradeColumn), true
}

// Visualize writes the student number / total grade scatter plot, with the
// average total grade as a reference line, to the configured image path.
func (r *GradesReader) Visualize() {
	if r.grades == nil {
		r.println(msgNoGrades)
		return
	}

	avg, ok := r.averageTotalGrade()
	if !ok {
		return
	}

	img, err := report.CreateScatterPlot(report.ScatterData{
		StudentNumbers: mat.Col(nil, parser.StudentNumberColumn, r.grades),
		TotalGrades:    mat.Col(nil, parser.TotalGradeColumn, r.grades),
		AverageTotal:   avg,
	}, r.cfg.Plot)
	if err != nil {
		r.logger.Error("render scatter plot failed", zap.Error(err))
		r.println(err.Error())
		return
	}

	if err := os.WriteFile(r.cfg.Output.ImagePath, img, 0o644); err != nil {
		r.logger.Error("write scatter plot failed", zap.String("path", r.cfg.Output.ImagePath), zap.Error(err))
		r.println(err.Error())
		return
	}
	r.logger.Info("scatter plot written", zap.String("path", r.cfg.Output.ImagePath), zap.Float64("averageTotal", avg))
}

func (r *GradesReader) println(msg string) {
	fmt.Fprintln(r.out, msg)
}
