package fontload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ScalableFont is a loaded font file with its original bytes.
type ScalableFont struct {
	Fontname string // full font name, empty if not decodable
	Filepath string
	Binary   []byte
}

// Load loads an OpenType font (TTF or OTF) from a file.
// If fontfile is a plain file name which does not exist in the working
// directory, it is searched for in the system's font directories.
func Load(fontfile string) (*ScalableFont, error) {
	path, err := Locate(fontfile)
	if err != nil {
		return nil, err
	}
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := Parse(bytez)
	f.Filepath = path
	return f, nil
}

// Locate returns the path of a font file.
func Locate(fontfile string) (string, error) {
	_, err := os.Stat(fontfile)
	if err == nil {
		return fontfile, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || filepath.Base(fontfile) != fontfile {
		return "", err
	}
	path, ferr := findfont.Find(fontfile)
	if ferr != nil {
		return "", fmt.Errorf("font %s not found: %w", fontfile, ferr)
	}
	return path, nil
}

// Parse wraps font data into a ScalableFont. Font data which cannot be
// decoded by package sfnt is accepted, but the font's name will be empty.
func Parse(fbytes []byte) *ScalableFont {
	f := &ScalableFont{Binary: fbytes}
	if sf, err := sfnt.Parse(fbytes); err == nil {
		f.Fontname, _ = sf.Name(nil, sfnt.NameIDFull)
	}
	return f
}

// Check decodes font data with an independent sfnt parser, to make sure that
// a transformed font is still loadable.
func Check(fbytes []byte) error {
	_, err := sfnt.Parse(fbytes)
	return err
}

// Advance returns the advance width of the glyph for code-point r, in font units.
func Advance(fbytes []byte, r rune) (int, error) {
	f, err := sfnt.Parse(fbytes)
	if err != nil {
		return 0, err
	}
	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return 0, err
	}
	upem := f.UnitsPerEm()
	adv, err := f.GlyphAdvance(&buf, gid, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return 0, err
	}
	return adv.Round(), nil
}
