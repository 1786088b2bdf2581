package grades

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/mat"

	"github.com/user/grades_analyzer_go/internal/config"
)

type fixture struct {
	dir    string
	out    *bytes.Buffer
	reader *GradesReader
}

func (f *fixture) imagePath() string {
	return filepath.Join(f.dir, "Grades.png")
}

func (f *fixture) lines() []string {
	return strings.Split(strings.TrimSpace(f.out.String()), "\n")
}

func newFixture(t *testing.T, name, content string) *fixture {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Output.ImagePath = filepath.Join(dir, "Grades.png")

	out := new(bytes.Buffer)
	reader := NewGradesReader(path,
		WithConfig(cfg),
		WithOutput(out),
		WithLogger(zaptest.NewLogger(t)),
	)
	return &fixture{dir: dir, out: out, reader: reader}
}

func TestGradesReader_EndToEnd(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,70,90,85,NaN\n2,60,,,,70\n")

	f.reader.Impute()
	f.reader.Visualize()

	assert.Empty(t, f.out.String())

	g := f.reader.Grades()
	require.NotNil(t, g)
	assert.Equal(t, []float64{1, 80, 70, 90, 85, 70}, g.RawRowView(0))
	assert.Equal(t, []float64{2, 60, 70, 90, 85, 70}, g.RawRowView(1))

	avg, ok := f.reader.averageTotalGrade()
	require.True(t, ok)
	assert.Equal(t, 70.0, avg)

	img, err := os.ReadFile(f.imagePath())
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, cfg.Width, cfg.Height)
}

func TestGradesReader_AverageIsColumnMean(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,70,90,85,325\n2,60,75,88,92,315\n3,95,81,77,60,313\n4,70,70,70,70,280\n")

	f.reader.Impute()
	avg, ok := f.reader.averageTotalGrade()

	require.True(t, ok)
	assert.InDelta(t, (325.0+315+313+280)/4, avg, 1e-9)
}

func TestGradesReader_OverwritesExistingImage(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,70,90,85,325\n2,60,75,88,92,315\n")
	require.NoError(t, os.WriteFile(f.imagePath(), []byte("stale"), 0o644))

	f.reader.Visualize()

	img, err := os.ReadFile(f.imagePath())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}

func TestGradesReader_FileNotFound(t *testing.T) {
	f := newFixture(t, "missing.csv", "")

	assert.Nil(t, f.reader.Grades())

	f.reader.Impute()
	f.reader.Visualize()
	_, ok := f.reader.averageTotalGrade()

	assert.False(t, ok)
	assert.Equal(t, []string{
		"Error: File not found",
		"No Grades Found",
		"No Grades Found",
		"No grades found",
	}, f.lines())
	assert.NoFileExists(t, f.imagePath())
}

func TestGradesReader_FormatError(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,70,90,85,325\n2,60\n")

	assert.Nil(t, f.reader.Grades())
	assert.Equal(t, []string{"Error: File format is not correct"}, f.lines())
}

func TestGradesReader_OtherLoadErrorPrintsMessage(t *testing.T) {
	dir := t.TempDir()
	out := new(bytes.Buffer)

	r := NewGradesReader(dir, WithOutput(out), WithLogger(zaptest.NewLogger(t)))

	assert.Nil(t, r.Grades())
	msg := strings.TrimSpace(out.String())
	assert.NotEmpty(t, msg)
	assert.NotEqual(t, "Error: File not found", msg)
	assert.NotEqual(t, "Error: File format is not correct", msg)
}

func TestGradesReader_FewerThanSixColumns(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,70\n2,60,\n")

	require.NotNil(t, f.reader.Grades())
	f.reader.Impute()
	f.reader.Visualize()

	assert.Equal(t, []string{"Error: No total grade column (index 5) found"}, f.lines())
	assert.NoFileExists(t, f.imagePath())
	assert.Equal(t, 70.0, f.reader.Grades().At(1, 2))
}

func TestGradesReader_ImputeTwiceIsStable(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,,90,85,300\n2,,75,88,92,\n3,70,65,,60,310\n")

	f.reader.Impute()
	once := mat.DenseCopyOf(f.reader.Grades())
	f.reader.Impute()

	assert.True(t, mat.Equal(once, f.reader.Grades()))
	assert.Equal(t, 75.0, once.At(1, 1))
	assert.Equal(t, 70.0, once.At(0, 2))
	assert.Equal(t, 89.0, once.At(2, 3))
	assert.Equal(t, 305.0, once.At(1, 5))
}

func TestGradesReader_AllMissingColumnStaysMissing(t *testing.T) {
	f := newFixture(t, "TEST.csv", "1,80,,90,85,300\n2,70,,88,92,310\n")

	f.reader.Impute()

	g := f.reader.Grades()
	assert.True(t, math.IsNaN(g.At(0, 2)))
	assert.True(t, math.IsNaN(g.At(1, 2)))
	assert.Empty(t, f.out.String())
}

func TestGradesReader_Workbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TEST.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]interface{}{1, 80, 70, 90, 85, 320}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]interface{}{2, 60, 75, 88, 92}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	cfg := config.Default()
	cfg.Output.ImagePath = filepath.Join(dir, "Grades.png")
	out := new(bytes.Buffer)
	r := NewGradesReader(path, WithConfig(cfg), WithOutput(out), WithLogger(zaptest.NewLogger(t)))

	r.Impute()
	r.Visualize()

	assert.Empty(t, out.String())
	assert.Equal(t, 320.0, r.Grades().At(1, 5))
	assert.FileExists(t, cfg.Output.ImagePath)
}
