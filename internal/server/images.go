package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type uploadedImage struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

func decodeImageData(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, errors.New("no image data")
	}
	parts := strings.SplitN(data, ",", 2)
	if len(parts) == 2 {
		data = parts[1]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func encodeImageData(mimeType string, image []byte) string {
	if len(image) == 0 {
		return ""
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
}

// parseUpload decodes a data URL (or bare base64) and checks that the bytes
// are an image no larger than maxBytes.
func parseUpload(raw string, maxBytes int) (uploadedImage, error) {
	data, err := decodeImageData(raw)
	if err != nil {
		return uploadedImage{}, fmt.Errorf("invalid image data: %w", err)
	}
	if len(data) == 0 {
		return uploadedImage{}, errors.New("no image data")
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return uploadedImage{}, fmt.Errorf("image must be %d bytes or fewer", maxBytes)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return uploadedImage{}, fmt.Errorf("unsupported image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return uploadedImage{}, errors.New("image has no pixels")
	}
	return uploadedImage{
		Data:     data,
		MimeType: "image/" + format,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

func (u uploadedImage) Src() string {
	return encodeImageData(u.MimeType, u.Data)
}
