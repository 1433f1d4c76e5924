package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveURLDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := l.Save(ctx, "me.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "profile_pics/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.Equal(t, "/media/"+ref, l.URL(ref))
	assert.Empty(t, l.URL(""))

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, l.Delete(ctx, ref))
	require.NoError(t, l.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocal_Rejects(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/media")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.Save(ctx, "script.sh", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = l.Save(ctx, "big.jpg", bytes.NewReader(make([]byte, MaxPictureSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)
	entries, err := os.ReadDir(filepath.Join(l.Dir(), "profile_pics"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, l.Delete(ctx, "../etc/passwd"), ErrInvalidRef)
	assert.ErrorIs(t, l.Delete(ctx, ""), ErrInvalidRef)
}
