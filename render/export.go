package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/scene"
)

// Format is an export image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("unsupported format %q (want svg, png or jpg)", s)
}

// Ext returns the file extension for the format, with the leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatSVG:
		return ".svg"
	case FormatJPG:
		return ".jpg"
	}
	return ".png"
}

// ExportOptions controls an image export.
type ExportOptions struct {
	// Width is the output width in pixels; zero means 1:1 with the source
	// rectangle.
	Width int
	// Format defaults to PNG.
	Format Format
	// RescaleDrawDistance widens the draw distance so the whole export
	// rectangle is covered: a region larger than the live viewport would
	// otherwise come out partially culled.
	RescaleDrawDistance bool
}

// RescaledDrawDistance returns the culling radius to export source with:
// the current radius, widened to at least ceil(max(w,h) / (2*cellSize))
// cells so the allowed square reaches every corner of the source rect. A
// disabled radius stays disabled.
func RescaledDrawDistance(s *scene.Scene, source geom.Rect) int {
	current := s.Culler().Radius()
	if current <= 0 {
		return current
	}
	required := int(math.Ceil(math.Max(source.W, source.H) / float64(2*s.Grid().CellSize)))
	if required > current {
		return required
	}
	return current
}

// Export renders the source rectangle to an image file. Visibility is
// recomputed against the export rectangle for the duration of the render
// and fully restored afterwards, so the on-screen state never changes.
func Export(s *scene.Scene, path string, source geom.Rect, opts ExportOptions) error {
	source = source.Intersect(s.Grid().Bounds())
	if source.Empty() {
		return fmt.Errorf("export rectangle lies outside the map bounds")
	}

	format := opts.Format
	if format == "" {
		format = FormatPNG
	}

	radius := s.Culler().Radius()
	if opts.RescaleDrawDistance {
		radius = RescaledDrawDistance(s, source)
	}

	if format == FormatSVG {
		f, err := createExportFile(path)
		if err != nil {
			return err
		}
		err = s.Culler().WithOverride(source, radius, func() error {
			return WriteSVG(f, s, source)
		})
		if err != nil {
			f.Close()
			return fmt.Errorf("encode svg: %w", err)
		}
		return f.Close()
	}

	var img *image.RGBA
	err := s.Culler().WithOverride(source, radius, func() error {
		img = Raster(s, source, Options{
			Width:       opts.Width,
			Transparent: format == FormatPNG,
		})
		return nil
	})
	if err != nil {
		return err
	}

	f, err := createExportFile(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatJPG:
		// JPEG has no alpha; flatten onto white.
		flat := image.NewRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), img, image.Point{}, draw.Over)
		err = jpeg.Encode(f, flat, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return f.Close()
}

func createExportFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	return f, nil
}
