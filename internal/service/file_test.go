package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/testutil"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// upload wraps data in a multipart form the way a browser submits it.
func upload(t *testing.T, filename string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["avatar"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func storedPath(f *fixture, file *model.File) string {
	return filepath.Join(f.store.Root(), filepath.FromSlash(file.StoragePath))
}

func TestFileService_UploadAvatarReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")

	file, header := upload(t, "me.png", pngBytes(t, 200, 100))
	first, err := f.files.UploadAvatar(ctx, user.ID, file, header)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", first.MimeType)
	assert.FileExists(t, storedPath(f, first))
	assert.Equal(t, "/uploads/"+first.StoragePath, f.files.URL(first))

	file, header = upload(t, "me2.png", pngBytes(t, 50, 50))
	second, err := f.files.UploadAvatar(ctx, user.ID, file, header)
	require.NoError(t, err)

	assert.NoFileExists(t, storedPath(f, first))
	assert.FileExists(t, storedPath(f, second))

	current, err := f.files.Avatar(user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	withAvatar, err := f.users.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, f.files.URL(second), withAvatar.AvatarURL)
}

func TestFileService_UploadAvatarRejectsNonImages(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")

	file, header := upload(t, "notes.png", []byte("just some text, not an image"))
	_, err := f.files.UploadAvatar(context.Background(), user.ID, file, header)
	assert.ErrorIs(t, err, ErrValidation)

	file, header = upload(t, "me.gif", pngBytes(t, 10, 10))
	_, err = f.files.UploadAvatar(context.Background(), user.ID, file, header)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFileService_DeleteUserAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")

	require.NoError(t, f.files.DeleteUserAvatar(ctx, user.ID))

	file, header := upload(t, "me.png", pngBytes(t, 20, 20))
	avatar, err := f.files.UploadAvatar(ctx, user.ID, file, header)
	require.NoError(t, err)

	require.NoError(t, f.files.DeleteUserAvatar(ctx, user.ID))
	_, err = f.files.Avatar(user.ID)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
	_, err = os.Stat(storedPath(f, avatar))
	assert.True(t, os.IsNotExist(err))
}

func TestUserService_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))
	testutil.Complete(t, f.db, habit.ID, "2024-03-14")

	file, header := upload(t, "me.png", pngBytes(t, 20, 20))
	avatar, err := f.files.UploadAvatar(ctx, user.ID, file, header)
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteAccount(ctx, user.ID))

	_, err = f.users.ByID(user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = f.habits.ByID(user.ID, habit.ID)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
	assert.NoFileExists(t, storedPath(f, avatar))
}
