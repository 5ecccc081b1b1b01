package imagecache

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"net/http"
)

// Format is the detected image encoding.
type Format string

const (
	FormatJPEG  Format = "jpeg"
	FormatPNG   Format = "png"
	FormatOther Format = "other"
)

// JPEGQuality is the re-encode quality for JPEG images.
const JPEGQuality = 90

// Classify sniffs the leading bytes of data.
func Classify(data []byte) Format {
	if len(data) > 512 {
		data = data[:512]
	}
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return FormatJPEG
	case "image/png":
		return FormatPNG
	default:
		return FormatOther
	}
}

// Compress re-encodes JPEG at JPEGQuality and PNG at maximum lossless
// compression with true-colour output. Other formats, undecodable input and
// re-encodes that are not smaller are returned unchanged.
func Compress(data []byte) ([]byte, Format) {
	format := Classify(data)

	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return data, format
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return data, format
		}
	case FormatPNG:
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return data, format
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, trueColor(img)); err != nil {
			return data, format
		}
	default:
		return data, format
	}

	if buf.Len() == 0 || buf.Len() >= len(data) {
		return data, format
	}
	return buf.Bytes(), format
}

// trueColor expands paletted images so the encoder never emits a palette.
func trueColor(img image.Image) image.Image {
	p, ok := img.(*image.Paletted)
	if !ok {
		return img
	}
	out := image.NewNRGBA(p.Bounds())
	draw.Draw(out, out.Bounds(), p, p.Bounds().Min, draw.Src)
	return out
}
