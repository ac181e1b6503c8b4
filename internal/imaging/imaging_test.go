package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a jpeg: %v", err)
	}
	return img
}

func TestThumbnailProducesExactBox(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		size Size
	}{
		{name: "wide avatar", w: 800, h: 400, size: AvatarSize},
		{name: "tall work image", w: 300, h: 900, size: WorkImageSize},
		{name: "small upscale", w: 40, h: 30, size: WorkImageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Thumbnail(encodePNG(t, tt.w, tt.h), tt.size, DefaultQuality)
			if err != nil {
				t.Fatalf("Thumbnail returned error: %v", err)
			}
			b := decodeJPEG(t, out).Bounds()
			if b.Dx() != tt.size.Width || b.Dy() != tt.size.Height {
				t.Fatalf("expected %dx%d, got %dx%d", tt.size.Width, tt.size.Height, b.Dx(), b.Dy())
			}
		})
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail([]byte("not an image"), AvatarSize, DefaultQuality); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := Thumbnail(nil, Size{}, DefaultQuality); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestCoverRectCentres(t *testing.T) {
	got := coverRect(image.Rect(0, 0, 400, 100), Size{Width: 100, Height: 100})
	want := image.Rect(150, 0, 250, 100)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = coverRect(image.Rect(0, 0, 100, 400), Size{Width: 100, Height: 100})
	want = image.Rect(0, 150, 100, 250)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCoverRectNeverCollapses(t *testing.T) {
	tests := []struct {
		name string
		src  image.Rectangle
		size Size
	}{
		{name: "one pixel", src: image.Rect(0, 0, 1, 1), size: WorkImageSize},
		{name: "thin column", src: image.Rect(0, 0, 1, 500), size: WorkImageSize},
		{name: "thin row", src: image.Rect(0, 0, 500, 1), size: AvatarSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coverRect(tt.src, tt.size)
			if got.Dx() < 1 || got.Dy() < 1 {
				t.Fatalf("crop %v of %v is empty", got, tt.src)
			}
			if !got.In(tt.src) {
				t.Fatalf("crop %v escapes %v", got, tt.src)
			}
		})
	}
}

func TestThumbnailOfSinglePixelKeepsColour(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	out, err := Thumbnail(buf.Bytes(), WorkImageSize, DefaultQuality)
	if err != nil {
		t.Fatalf("Thumbnail returned error: %v", err)
	}
	r, g, b, _ := decodeJPEG(t, out).At(320, 180).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Fatalf("expected a red thumbnail, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestFitKeepsAspect(t *testing.T) {
	out, err := Fit(encodePNG(t, 400, 200), 100, 0)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	b := decodeJPEG(t, out).Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50, got %dx%d", b.Dx(), b.Dy())
	}
}
