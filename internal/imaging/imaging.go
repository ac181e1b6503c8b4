// Package imaging 生成 JPEG 缩略图和缩放后的预览图。
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultQuality 是缩略图使用的 JPEG 质量。
const DefaultQuality = 82

// Size 是以像素为单位的目标尺寸。
type Size struct {
	Width  int
	Height int
}

var (
	// AvatarSize 是推荐人头像的缩略图尺寸。
	AvatarSize = Size{Width: 256, Height: 256}
	// WorkImageSize 是作品图片的缩略图尺寸。
	WorkImageSize = Size{Width: 640, Height: 360}
)

// ErrInvalidSize 表示目标尺寸不是正数。
var ErrInvalidSize = errors.New("imaging: invalid target size")

// Thumbnail 解码 src，以中心为基准裁剪到 size 的宽高比，
// 缩放到 size 并编码为 JPEG。
func Thumbnail(src []byte, size Size, quality int) ([]byte, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, ErrInvalidSize
	}
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	crop := coverRect(img.Bounds(), size)
	dst := newCanvas(size.Width, size.Height)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	return encodeJPEG(dst, quality)
}

// Fit 将 src 缩放到指定宽度：height 为 0 时保持宽高比，否则居中裁剪填充。
// 宽度小于 width 的图片不会放大。
func Fit(src []byte, width, height int) ([]byte, error) {
	if width <= 0 || height < 0 {
		return nil, ErrInvalidSize
	}
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if height > 0 {
		return Thumbnail(src, Size{Width: width, Height: height}, DefaultQuality)
	}
	if b.Dx() <= width {
		return encodeJPEG(img, DefaultQuality)
	}

	h := max(1, b.Dy()*width/b.Dx())
	dst := newCanvas(width, h)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return encodeJPEG(dst, DefaultQuality)
}

// coverRect 返回 b 中居中且宽高比与 size 相同的子矩形，宽高至少为 1。
func coverRect(b image.Rectangle, size Size) image.Rectangle {
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return b
	}

	// 不用浮点数比较 sw/sh 与 size.Width/size.Height。
	if sw*size.Height > sh*size.Width {
		cropW := max(1, sh*size.Width/size.Height)
		x0 := b.Min.X + (sw-cropW)/2
		return image.Rect(x0, b.Min.Y, x0+cropW, b.Max.Y)
	}

	cropH := max(1, sw*size.Height/size.Width)
	y0 := b.Min.Y + (sh-cropH)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+cropH)
}

func newCanvas(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
