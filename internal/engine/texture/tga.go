// Package texture loads terrain textures from disk and uploads them to GL.
package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

func init() {
	// TGA has no magic number; match on the colour-map and image-type bytes.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGAReader, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGAReader, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(h []byte) (tgaHeader, error) {
	if len(h) < tgaHeaderSize {
		return tgaHeader{}, errors.New("tga: header too short")
	}
	hdr := tgaHeader{
		idLength:    int(h[0]),
		imageType:   h[2],
		width:       int(h[12]) | int(h[13])<<8,
		height:      int(h[14]) | int(h[15])<<8,
		bpp:         int(h[16]),
		topToBottom: h[17]&0x20 != 0,
	}
	if h[1] != 0 {
		return hdr, errors.New("tga: color-mapped images not supported")
	}
	if hdr.imageType != TGATypeUncompressed && hdr.imageType != TGATypeRLE {
		return hdr, fmt.Errorf("tga: unsupported type %d", hdr.imageType)
	}
	if hdr.bpp != 24 && hdr.bpp != 32 {
		return hdr, fmt.Errorf("tga: unsupported bit depth %d", hdr.bpp)
	}
	return hdr, nil
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	h := make([]byte, tgaHeaderSize)
	if _, err := io.ReadFull(r, h); err != nil {
		return image.Config{}, err
	}
	hdr, err := parseTGAHeader(h)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: hdr.width, Height: hdr.height}, nil
}

func decodeTGAReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return DecodeTGA(data)
}

// DecodeTGA decodes uncompressed or RLE true-colour TGA data.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	hdr, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + hdr.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	img := image.NewRGBA(image.Rect(0, 0, hdr.width, hdr.height))
	d := tgaPixels{data: data[offset:], bytesPerPixel: hdr.bpp / 8}
	total := hdr.width * hdr.height

	put := func(n int, c color.RGBA) {
		x := n % hdr.width
		y := n / hdr.width
		if !hdr.topToBottom {
			y = hdr.height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	if hdr.imageType == TGATypeUncompressed {
		if len(d.data) < total*d.bytesPerPixel {
			return nil, errTGATruncated
		}
		for n := range total {
			c, _ := d.next()
			put(n, c)
		}
		return img, nil
	}

	for n := 0; n < total; {
		packet, ok := d.byte()
		if !ok {
			return nil, errTGATruncated
		}
		count := int(packet&0x7F) + 1
		if packet&0x80 != 0 {
			c, ok := d.next()
			if !ok {
				return nil, errTGATruncated
			}
			for ; count > 0 && n < total; count-- {
				put(n, c)
				n++
			}
			continue
		}
		for ; count > 0 && n < total; count-- {
			c, ok := d.next()
			if !ok {
				return nil, errTGATruncated
			}
			put(n, c)
			n++
		}
	}
	return img, nil
}

// tgaPixels reads BGR(A) pixels sequentially.
type tgaPixels struct {
	data          []byte
	pos           int
	bytesPerPixel int
}

func (p *tgaPixels) byte() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	b := p.data[p.pos]
	p.pos++
	return b, true
}

func (p *tgaPixels) next() (color.RGBA, bool) {
	if p.pos+p.bytesPerPixel > len(p.data) {
		return color.RGBA{}, false
	}
	px := p.data[p.pos : p.pos+p.bytesPerPixel]
	p.pos += p.bytesPerPixel
	c := color.RGBA{R: px[2], G: px[1], B: px[0], A: 255}
	if p.bytesPerPixel == 4 {
		c.A = px[3]
	}
	return c, true
}
