// Package snapshot writes composited frames to disk as WebP, TGA or PNG, optionally reducing a
// supersampled frame first.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Format is an output image encoding.
type Format int

const (
	FormatWebP Format = iota
	FormatTGA
	FormatPNG
)

// String returns the file extension of f without the dot.
func (f Format) String() string {
	switch f {
	case FormatWebP:
		return "webp"
	case FormatTGA:
		return "tga"
	case FormatPNG:
		return "png"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// FormatFor picks the encoding from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return FormatWebP, nil
	case ".tga":
		return FormatTGA, nil
	case ".png":
		return FormatPNG, nil
	}
	return 0, fmt.Errorf("snapshot: %s: unsupported extension", path)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, f Format, img image.Image) error {
	var err error
	switch f {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("snapshot: unknown %s", f)
	}
	if err != nil {
		return fmt.Errorf("snapshot: %s encode: %w", f, err)
	}
	return nil
}

// Write encodes img into path, choosing the format from the extension. The file is written
// next to its final name and renamed into place, so a failed encode leaves no partial file.
//
// Parameters:
//   - path: destination file
//   - img: the frame
//
// Returns:
//   - error: error if the extension is unsupported or the file cannot be written
func Write(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, f, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("snapshot: rename %s: %w", path, err)
	}
	return nil
}

// CheckWritable reports early whether a snapshot could be created at path.
func CheckWritable(path string) error {
	if _, err := FormatFor(path); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".probe.*")
	if err != nil {
		return fmt.Errorf("snapshot: %s is not writable: %w", path, err)
	}
	tmp.Close()
	return os.Remove(tmp.Name())
}

// Downsample reduces img by an integer factor with premultiplied-alpha-aware CatmullRom
// filtering, which keeps translucent overlay edges free of dark halos. A factor <= 1 returns
// img unchanged.
//
// Parameters:
//   - img: the supersampled frame
//   - factor: the supersampling factor
//
// Returns:
//   - *image.NRGBA: the reduced frame
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	b := img.Bounds()
	if factor <= 1 || b.Dx() < factor || b.Dy() < factor {
		return img
	}
	tw, th := b.Dx()/factor, b.Dy()/factor

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255.0 / a
			out.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = dst.Pix[i+3]
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
