package preview_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatter-drawio/internal/drawio"
	"scatter-drawio/internal/features/preview"
	"scatter-drawio/internal/scatter"
)

func sampleDocument(t *testing.T) *drawio.Document {
	t.Helper()
	records := []scatter.Record{
		{X: 0, Y: 0, Label: "A"},
		{X: 10, Y: 0, Label: "B"},
		{X: 5, Y: 10, Label: "C"},
	}
	b, err := scatter.ComputeBounds(records)
	require.NoError(t, err)
	doc, err := drawio.Assemble(records, b, scatter.DefaultCanvas(), time.Now())
	require.NoError(t, err)
	return doc
}

func TestRender(t *testing.T) {
	img, err := preview.Render(sampleDocument(t), preview.Options{})
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())

	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{255, 255, 255}, [3]uint32{r >> 8, g >> 8, b >> 8}, "background")

	// pt-2 sits at (400, 80)
	r, g, b, _ = img.At(400, 80).RGBA()
	assert.Equal(t, [3]uint32{0xf8, 0xce, 0xcc}, [3]uint32{r >> 8, g >> 8, b >> 8}, "marker fill")

	// horizontal axis runs along y=580
	r, g, b, _ = img.At(300, 580).RGBA()
	assert.Less(t, r>>8+g>>8+b>>8, uint32(3*128), "axis stroke")
}

func TestRender_Scale(t *testing.T) {
	img, err := preview.Render(sampleDocument(t), preview.Options{Scale: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRender_EmptyHeader(t *testing.T) {
	_, err := preview.Render(drawio.NewDocument(drawio.Header{}), preview.Options{})
	assert.Error(t, err)
}

func TestEncodePNG_Save(t *testing.T) {
	data, err := preview.EncodePNG(sampleDocument(t), preview.Options{FontPath: "missing.ttf"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, preview.Save(path, data))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(saved))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestSave_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := preview.Save(filepath.Join(blocker, "chart.png"), []byte("png"))
	assert.Error(t, err)
}
