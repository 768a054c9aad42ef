package filestorage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/domain"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.White)
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestLocalStorage_SaveResizesWideImages(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), 100)
	require.NoError(t, err)

	name, err := ls.Save(fileHeader(t, "photo.PNG", pngBytes(t, 400, 200)), domain.UploadEvent)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, name)

	size, err := ls.Dimensions(domain.UploadEvent, name)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 50), size)
}

func TestLocalStorage_SaveKeepsSmallImages(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), 1000)
	require.NoError(t, err)

	name, err := ls.Save(fileHeader(t, "photo.png", pngBytes(t, 40, 30)), domain.UploadPost)
	require.NoError(t, err)

	size, err := ls.Dimensions(domain.UploadPost, name)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 30), size)
}

func TestLocalStorage_SaveRejectsNonImages(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), 100)
	require.NoError(t, err)

	_, err = ls.Save(fileHeader(t, "doc.pdf", []byte("%PDF")), domain.UploadPost)
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = ls.Save(fileHeader(t, "fake.jpg", []byte("not an image")), domain.UploadPost)
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestLocalStorage_SaveNilHeader(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), 100)
	require.NoError(t, err)

	name, err := ls.Save(nil, domain.UploadPost)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestLocalStorage_Delete(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), 0)
	require.NoError(t, err)

	name, err := ls.Save(fileHeader(t, "anim.gif", []byte("GIF89a")), domain.UploadCampaign)
	require.NoError(t, err)
	_, err = os.Stat(ls.Path(domain.UploadCampaign, name))
	require.NoError(t, err)

	require.NoError(t, ls.Delete(domain.UploadCampaign, name))
	_, err = os.Stat(ls.Path(domain.UploadCampaign, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.Delete(domain.UploadCampaign, name))
	assert.Error(t, ls.Delete(domain.UploadCampaign, ".."))
}

func TestLocalStorage_PathUsesBaseName(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), 0)
	require.NoError(t, err)
	assert.Equal(t, ls.Path(domain.UploadReport, "a.png"), ls.Path(domain.UploadReport, "../../a.png"))
}
