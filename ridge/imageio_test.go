package ridge

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadImage_Formats(t *testing.T) {
	src := skyline(12, 7, 3)
	dir := t.TempDir()

	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".TIFF"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "img"+ext)
			require.NoError(t, SaveImage(path, src))

			img, err := LoadImage(path)
			require.NoError(t, err)
			assert.Equal(t, 12, img.Bounds().Dx())
			assert.Equal(t, 7, img.Bounds().Dy())
		})
	}
}

func TestSaveImage_LosslessRoundTrip(t *testing.T) {
	src := skyline(5, 4, 2)
	path := filepath.Join(t.TempDir(), "sky.png")
	require.NoError(t, SaveImage(path, src))

	img, err := LoadImage(path)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(0, 3).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
}

func TestSaveImage_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	err := SaveImage(path, skyline(2, 2, 1))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed save should not leave a file behind")
}

func TestEncodeImage_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeImage(&buf, "", image.NewGray(image.Rect(0, 0, 1, 1)))
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadImage(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, ErrInvalidImage))

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = LoadImage(garbage)
	assert.True(t, errors.Is(err, ErrInvalidImage))
}

func TestCloneRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(3, 3, 6, 5))
	src.SetGray(3, 3, color.Gray{Y: 200})

	dst := CloneRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), dst.Bounds())
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, dst.RGBAAt(0, 0))

	dst.Set(0, 0, color.RGBA{1, 2, 3, 255})
	assert.Equal(t, uint8(200), src.GrayAt(3, 3).Y, "clone must not alias the source")
}
