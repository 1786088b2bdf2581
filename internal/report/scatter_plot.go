package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/user/grades_analyzer_go/internal/config"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	scatterTitle  = "Scores of The Exam"
	scatterXLabel = "Student Number"
	scatterYLabel = "Total Grade"
)

// ScatterData is what the grades scatter plot draws.
type ScatterData struct {
	StudentNumbers []float64
	TotalGrades    []float64
	AverageTotal   float64
}

// CreateScatterPlot renders student number against total grade with a
// horizontal line at the average total, and returns the PNG bytes.
func CreateScatterPlot(data ScatterData, style config.PlotConfig) ([]byte, error) {
	if len(data.StudentNumbers) == 0 || len(data.StudentNumbers) != len(data.TotalGrades) {
		return nil, fmt.Errorf("scatter plot needs equal, non-empty columns (got %d and %d values)",
			len(data.StudentNumbers), len(data.TotalGrades))
	}

	p := plot.New()
	p.Title.Text = scatterTitle
	p.X.Label.Text = scatterXLabel
	p.Y.Label.Text = scatterYLabel

	if ticks := generateTicks(floats.Min(data.StudentNumbers), floats.Max(data.StudentNumbers), style.TickStep); ticks != nil {
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	if ticks := generateTicks(floats.Min(data.TotalGrades), floats.Max(data.TotalGrades), style.TickStep); ticks != nil {
		p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	}

	pts := make(plotter.XYs, len(data.StudentNumbers))
	for i := range pts {
		pts[i].X = data.StudentNumbers[i]
		pts[i].Y = data.TotalGrades[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = color.NRGBA{R: 255, A: uint8(math.Round(style.MarkerAlpha * 255))}
	// marker area is given in pt^2, the glyph wants a radius
	scatter.GlyphStyle.Radius = vg.Points(math.Sqrt(style.MarkerAreaPt2) / 2)
	p.Add(scatter)

	avg := data.AverageTotal
	avgLine := plotter.NewFunction(func(float64) float64 { return avg })
	avgLine.Color = color.Black
	avgLine.Width = vg.Points(style.LineWidthPt)
	p.Add(avgLine)
	p.Legend.Add(fmt.Sprintf("Average Total Grade: %.2f", avg), avgLine)
	p.Legend.Top = true

	side := vg.Length(style.SizeInches) * vg.Inch
	canvas := vgimg.NewWith(vgimg.UseWH(side, side), vgimg.UseDPI(int(style.DPI)))
	p.Draw(draw.New(canvas))

	buf := new(bytes.Buffer)
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// generateTicks returns major ticks at min, min+step, ... while below max+1,
// so max itself gets a tick when it falls on the grid. Non-finite extents
// yield nil and the axis keeps its default ticker.
func generateTicks(min, max, step float64) []plot.Tick {
	if step <= 0 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}

	n := int(math.Ceil((max + 1 - min) / step))
	ticks := make([]plot.Tick, 0, n)
	for i := 0; i < n; i++ {
		v := min + float64(i)*step
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}
