package server

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestParseUploadPNGDataURL(t *testing.T) {
	upload, err := parseUpload(testImageData, 1024)
	if err != nil {
		t.Fatalf("parse upload: %v", err)
	}
	if upload.MimeType != "image/png" || upload.Width != 1 || upload.Height != 1 {
		t.Fatalf("unexpected upload %+v", upload)
	}
	if !strings.HasPrefix(upload.Src(), "data:image/png;base64,") {
		t.Fatalf("unexpected src %q", upload.Src())
	}
}

func TestParseUploadBMPNormalizesMime(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	raw := base64.StdEncoding.EncodeToString(buf.Bytes())

	upload, err := parseUpload(raw, 0)
	if err != nil {
		t.Fatalf("parse bmp: %v", err)
	}
	if upload.MimeType != "image/bmp" || upload.Width != 2 || upload.Height != 3 {
		t.Fatalf("unexpected upload %+v", upload)
	}
}

func TestParseUploadRejects(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	large := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	tests := []struct {
		name string
		raw  string
		max  int
		want string
	}{
		{name: "empty", raw: "   ", max: 1024, want: "no image data"},
		{name: "not base64", raw: "data:image/png;base64,@@@", max: 1024, want: "invalid image data"},
		{name: "not an image", raw: base64.StdEncoding.EncodeToString([]byte("hello world")), max: 1024, want: "unsupported image"},
		{name: "too large", raw: large, max: 10, want: "bytes or fewer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseUpload(tt.raw, tt.max)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
