/*
Package palgen is a library for converting raw RGB palette files, as used by
NES and other emulators, into sequence literals of packed 24-bit colors that
can be pasted into source code.

Palettes can also be kept in a small SQLite database so they can be converted
by name, and new palettes can be generated from reference images.
*/
package palgen

import (
	"image"
	"io"
	"log"

	"github.com/bodgit/palgen/literal"
	"github.com/bodgit/palgen/palette"
	"github.com/disintegration/imaging"
)

// DefaultFile is the palette converted when no file is given
const DefaultFile = "nes.pal"

type PalGen struct {
	db     *PaletteDB
	logger *log.Logger
}

// New returns a PalGen using db, which may be nil if no database operations
// are going to be used.
func New(db *PaletteDB, logger *log.Logger) *PalGen {
	return &PalGen{
		db:     db,
		logger: logger,
	}
}

func (p *PalGen) decodeFile(file string) (palette.Palette, error) {
	b, err := palette.ReadFile(file)
	if err != nil {
		return nil, err
	}

	if n := palette.Trailing(b); n > 0 {
		p.logger.Printf("Ignoring %d trailing byte(s) in \"%s\"\n", n, file)
	}

	pal := palette.Records(b)
	p.logger.Printf("Decoded %d color(s) from \"%s\"\n", len(pal), file)

	return pal, nil
}

// Convert reads the palette in file and writes it to w as a single line
// literal. Nothing is written if the file cannot be read.
func (p *PalGen) Convert(w io.Writer, file string) error {
	pal, err := p.decodeFile(file)
	if err != nil {
		return err
	}
	return literal.NewWriter(w).Write(pal)
}

// ConvertNamed is like Convert but uses a palette from the database.
func (p *PalGen) ConvertNamed(w io.Writer, name string) error {
	pal, err := p.db.Find(name)
	if err != nil {
		return err
	}
	return literal.NewWriter(w).Write(pal)
}

// Import stores the palette in file under name.
func (p *PalGen) Import(name, file string) error {
	pal, err := p.decodeFile(file)
	if err != nil {
		return err
	}

	changed, err := p.db.Add(name, pal)
	if err != nil {
		return err
	}
	if !changed {
		p.logger.Printf("Palette \"%s\" is unchanged\n", name)
	}
	return nil
}

// Export writes the palette stored under name to w in raw format.
func (p *PalGen) Export(w io.Writer, name string) error {
	pal, err := p.db.Find(name)
	if err != nil {
		return err
	}
	return pal.Encode(w)
}

// List returns all palettes stored in the database.
func (p *PalGen) List() ([]Entry, error) {
	return p.db.List()
}

// Quantize generates a palette of at most n colors from the image in file and
// writes it to w in raw format. If size is greater than zero the image is
// first scaled down to fit within size by size pixels.
func (p *PalGen) Quantize(w io.Writer, file string, n, size int) error {
	m, err := imaging.Open(file, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	if size > 0 {
		b := m.Bounds()
		if b.Dx() > size || b.Dy() > size {
			if b.Dx() >= b.Dy() {
				m = imaging.Resize(m, size, 0, imaging.Lanczos)
			} else {
				m = imaging.Resize(m, 0, size, imaging.Lanczos)
			}
			p.logger.Printf("Scaled \"%s\" from %dx%d to %dx%d\n", file, b.Dx(), b.Dy(), m.Bounds().Dx(), m.Bounds().Dy())
		}
	}

	return p.quantize(w, m, n)
}

func (p *PalGen) quantize(w io.Writer, m image.Image, n int) error {
	pal, err := palette.Quantize(m, n)
	if err != nil {
		return err
	}
	p.logger.Printf("Generated %d color(s)\n", len(pal))

	return pal.Encode(w)
}
