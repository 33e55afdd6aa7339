// Package texture decodes image files into tightly packed 8-bit pixel rows
// ready for a 2D texture upload.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is the pixel layout of an uploaded texture.
type Format int

const (
	FormatRGB Format = iota
	FormatRed
	FormatRGBA
)

func (f Format) String() string {
	switch f {
	case FormatRed:
		return "red"
	case FormatRGBA:
		return "rgba"
	}
	return "rgb"
}

// FormatFor maps a channel count to its texture format. Counts other than
// 1, 3 and 4 fall back to RGB.
func FormatFor(channels int) Format {
	switch channels {
	case 1:
		return FormatRed
	case 3:
		return FormatRGB
	case 4:
		return FormatRGBA
	}
	return FormatRGB
}

// Image is decoded pixel data, rows top to bottom, Channels bytes per pixel
// with no row padding.
type Image struct {
	Width, Height int
	Channels      int
	Pix           []byte

	// Source is the name of the decoder that produced the image ("jpeg", "png", ...).
	Source string
}

func (img *Image) Format() Format {
	return FormatFor(img.Channels)
}

func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func Decode(r io.Reader) (*Image, error) {
	src, name, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	img := FromImage(src)
	img.Source = name
	return img, nil
}

// FromImage packs src by the channel count its colour model implies: gray
// images keep one channel, images carrying any non-opaque pixel keep four,
// everything else is reduced to RGB.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	out := &Image{Width: b.Dx(), Height: b.Dy(), Channels: channelsOf(src)}
	out.Pix = make([]byte, 0, out.Width*out.Height*out.Channels)

	switch out.Channels {
	case 1:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
				out.Pix = append(out.Pix, g.Y)
			}
		}
	case 4:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				out.Pix = append(out.Pix, c.R, c.G, c.B, c.A)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := src.At(x, y).RGBA()
				out.Pix = append(out.Pix, byte(r>>8), byte(g>>8), byte(bl>>8))
			}
		}
	}
	return out
}

func channelsOf(src image.Image) int {
	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	if opaque, ok := src.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return 3
	}
	return 4
}
