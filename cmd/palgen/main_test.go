package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the app with args, returning what was written to stdout and
// the exit code passed to cli.OsExiter, 0 if it wasn't called.
func run(t *testing.T, args ...string) (string, int, error) {
	code := 0
	exiter, errWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = ioutil.Discard
	defer func() {
		cli.OsExiter, cli.ErrWriter = exiter, errWriter
	}()

	stdout := new(bytes.Buffer)
	app, err := newApp(stdout)
	require.Nil(t, err)

	err = app.Run(append([]string{"palgen"}, args...))
	return stdout.String(), code, err
}

func tempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "palgen")
	require.Nil(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func TestConvert(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	tables := []struct {
		name   string
		input  []byte
		output string
	}{
		{"black", []byte{0x00, 0x00, 0x00}, "[ 0x000000 ]\n"},
		{"red green", []byte{0xff, 0x00, 0x00, 0x00, 0xff, 0x00}, "[ 0xff0000, 0x00ff00 ]\n"},
		{"short", []byte{0x01, 0x02}, "[  ]\n"},
		{"trailing", []byte{0x12, 0x34, 0x56, 0x78}, "[ 0x123456 ]\n"},
		{"empty", []byte{}, "[  ]\n"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			file := filepath.Join(dir, "nes.pal")
			require.Nil(t, ioutil.WriteFile(file, table.input, 0644))

			stdout, code, err := run(t, "convert", file)
			require.Nil(t, err)
			assert.Equal(t, 0, code)
			assert.Equal(t, table.output, stdout)

			stdout, code, err = run(t, "convert", "--file", file)
			require.Nil(t, err)
			assert.Equal(t, 0, code)
			assert.Equal(t, table.output, stdout)
		})
	}
}

func TestConvertMissing(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	stdout, code, err := run(t, "convert", filepath.Join(dir, "nes.pal"))
	assert.NotNil(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, "", stdout)
}

func TestImportConvertNamed(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	db := filepath.Join(dir, "test.db")
	file := filepath.Join(dir, "nes.pal")
	require.Nil(t, ioutil.WriteFile(file, []byte{0x62, 0x62, 0x62, 0x00, 0x1f, 0xb2}, 0644))

	_, code, err := run(t, "--db", db, "import", "nes", file)
	require.Nil(t, err)
	assert.Equal(t, 0, code)

	stdout, _, err := run(t, "--db", db, "convert", "--name", "nes")
	require.Nil(t, err)
	assert.Equal(t, "[ 0x626262, 0x001fb2 ]\n", stdout)

	stdout, _, err = run(t, "--db", db, "list")
	require.Nil(t, err)
	assert.Contains(t, stdout, "nes\t2\t")

	out := filepath.Join(dir, "out.pal")
	_, _, err = run(t, "--db", db, "export", "-o", out, "nes")
	require.Nil(t, err)
	b, err := ioutil.ReadFile(out)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x62, 0x62, 0x62, 0x00, 0x1f, 0xb2}, b)
}

func TestOutputKeptOnFailure(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	keep := []byte{0x12, 0x34, 0x56}
	out := filepath.Join(dir, "keep.pal")
	db := filepath.Join(dir, "test.db")

	tables := []struct {
		name string
		args []string
	}{
		{"quantize", []string{"quantize", "-o", out, filepath.Join(dir, "nosuch.png")}},
		{"export", []string{"--db", db, "export", "-o", out, "missing"}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			require.Nil(t, ioutil.WriteFile(out, keep, 0644))

			stdout, code, err := run(t, table.args...)
			assert.NotNil(t, err)
			assert.Equal(t, 1, code)
			assert.Equal(t, "", stdout)

			b, err := ioutil.ReadFile(out)
			require.Nil(t, err)
			assert.Equal(t, keep, b)
		})
	}

	missing := filepath.Join(dir, "new.pal")
	_, _, err := run(t, "quantize", "-o", missing, filepath.Join(dir, "nosuch.png"))
	assert.NotNil(t, err)
	_, err = os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestQuantize(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.Set(x, y, color.RGBA{uint8(x * 32), uint8(y * 32), 0x80, 0xff})
		}
	}

	file := filepath.Join(dir, "in.png")
	f, err := os.Create(file)
	require.Nil(t, err)
	require.Nil(t, png.Encode(f, m))
	require.Nil(t, f.Close())

	out := filepath.Join(dir, "out.pal")
	_, code, err := run(t, "quantize", "-n", "4", "-o", out, file)
	require.Nil(t, err)
	assert.Equal(t, 0, code)

	b, err := ioutil.ReadFile(out)
	require.Nil(t, err)
	assert.True(t, len(b) > 0 && len(b) <= 4*3)
	assert.Equal(t, 0, len(b)%3)
}
