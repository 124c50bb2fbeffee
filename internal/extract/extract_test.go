package extract

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
)

// fakeOsmium writes its arguments to the file named after -o.
const fakeOsmium = `#!/bin/sh
out=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "-o" ]; then out="$arg"; fi
  prev="$arg"
done
echo "$@" > "$out"
`

func writeFakeOsmium(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "osmium")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func TestOsmiumFilter_RunsTagsFilter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "finland-latest.osm.pbf")
	out := filepath.Join(dir, "finland-filtered.osm.pbf")
	require.NoError(t, os.WriteFile(in, []byte("pbf"), 0o644))

	f := NewOsmiumFilter(writeFakeOsmium(t, fakeOsmium), zap.NewNop())
	require.NoError(t, f.Filter(context.Background(), in, out, []string{"n/amenity=cafe", "n/shop=bakery"}))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "tags-filter "+in+" n/amenity=cafe n/shop=bakery -o "+out, strings.TrimSpace(string(got)))
}

func TestOsmiumFilter_SkipsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "filtered.osm.pbf")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))

	f := NewOsmiumFilter("/nonexistent/osmium", zap.NewNop())
	require.NoError(t, f.Filter(context.Background(), filepath.Join(dir, "missing.osm.pbf"), out, nil))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(got))
}

func TestOsmiumFilter_MissingInput(t *testing.T) {
	dir := t.TempDir()
	f := NewOsmiumFilter("osmium", zap.NewNop())

	err := f.Filter(context.Background(), filepath.Join(dir, "missing.osm.pbf"), filepath.Join(dir, "out.osm.pbf"), nil)
	assert.ErrorIs(t, err, errors.ErrExtractMissing)
}

func TestOsmiumFilter_FailureRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.osm.pbf")
	out := filepath.Join(dir, "out.osm.pbf")
	require.NoError(t, os.WriteFile(in, []byte("pbf"), 0o644))

	failing := "#!/bin/sh\nfor a in \"$@\"; do last=\"$a\"; done\necho partial > \"$last\"\necho 'bad filter expression' >&2\nexit 1\n"
	f := NewOsmiumFilter(writeFakeOsmium(t, failing), zap.NewNop())

	err := f.Filter(context.Background(), in, out, []string{"n/amenity=cafe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad filter expression")
	assert.NoFileExists(t, out)
}

func TestPBFSource_MissingExtract(t *testing.T) {
	src := NewPBFSource(filepath.Join(t.TempDir(), "none.osm.pbf"), 2, zap.NewNop())

	err := src.Each(context.Background(), func(domain.Feature) error { return nil })
	assert.ErrorIs(t, err, errors.ErrExtractMissing)
}

func TestPBFSource_CorruptExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.osm.pbf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not protobuf"), 0o644))

	src := NewPBFSource(path, 1, zap.NewNop())
	called := false
	err := src.Each(context.Background(), func(domain.Feature) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}
