package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/persist"
	"github.com/plus3/gridmap/render"
)

func main() {
	mapFile := flag.String("map", "", "Path to the saved map file to export.")
	out := flag.String("out", "", "Output image path. Defaults to the map file name with the format's extension.")
	formatName := flag.String("format", "svg", "Output format: svg, png or jpg.")
	width := flag.Int("width", 0, "Output width in pixels. 0 keeps the source resolution.")
	region := flag.String("region", "", "Cell region to export as blX,blY,trX,trY (bottom-left origin, inclusive). Empty exports the whole map.")
	rescale := flag.Bool("rescale-draw-distance", false, "Widen the draw distance so the exported region is fully covered.")
	flag.Parse()

	if *mapFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	format, err := render.ParseFormat(*formatName)
	if err != nil {
		log.Fatalf("mapexport: %v", err)
	}

	state, err := persist.Load(*mapFile)
	if err != nil {
		log.Fatalf("mapexport: load %s: %v", *mapFile, err)
	}

	source := state.Scene.Grid().Bounds()
	if *region != "" {
		source, err = parseRegion(state, *region)
		if err != nil {
			log.Fatalf("mapexport: %v", err)
		}
	}

	path := *out
	if path == "" {
		path = strings.TrimSuffix(*mapFile, ".json") + format.Ext()
	}

	opts := render.ExportOptions{
		Width:               *width,
		Format:              format,
		RescaleDrawDistance: *rescale,
	}
	if err := render.Export(state.Scene, path, source, opts); err != nil {
		log.Fatalf("mapexport: export: %v", err)
	}
	log.Printf("Exported %.0fx%.0f scene units to %s", source.W, source.H, path)
}

func parseRegion(state persist.State, region string) (geom.Rect, error) {
	parts := strings.Split(region, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("region needs four comma separated cell coordinates, got %q", region)
	}
	var cells [4]int
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &cells[i]); err != nil {
			return geom.Rect{}, fmt.Errorf("region coordinate %q: %w", p, err)
		}
	}
	return state.Scene.ExportRectFromCells(cells[0], cells[1], cells[2], cells[3])
}
