package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // регистрирует декодер
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultThumbnailWidth = 480
	DefaultQuality        = 85
)

// Processor строит JPEG-превью изображений
type Processor struct {
	quality        int // JPEG quality (1-100)
	thumbnailWidth int
}

func NewProcessor(quality, thumbnailWidth int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if thumbnailWidth <= 0 {
		thumbnailWidth = DefaultThumbnailWidth
	}
	return &Processor{
		quality:        quality,
		thumbnailWidth: thumbnailWidth,
	}
}

// Result - превью и размеры исходного изображения
type Result struct {
	Data          []byte
	Width, Height int // превью
	SourceWidth   int
	SourceHeight  int
}

// Thumbnail уменьшает изображение до ширины thumbnailWidth с сохранением
// пропорций. Изображения уже не шире превью не увеличиваются.
// Прозрачность заливается белым (JPEG без альфа-канала).
func (p *Processor) Thumbnail(data []byte) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("empty image")
	}

	dstW, dstH := srcW, srcH
	if srcW > p.thumbnailWidth {
		dstW = p.thumbnailWidth
		dstH = int(float64(srcH) * float64(dstW) / float64(srcW))
		if dstH < 1 {
			dstH = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return &Result{
		Data:         buf.Bytes(),
		Width:        dstW,
		Height:       dstH,
		SourceWidth:  srcW,
		SourceHeight: srcH,
	}, nil
}

// GetImageDimensions читает только заголовок изображения
func GetImageDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
