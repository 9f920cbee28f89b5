package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/gridmap/persist"
)

func main() {
	mapPath := flag.String("map", "", "Map file to open. Defaults to the autosave if one exists.")
	storageRoot := flag.String("storage", defaultStorageRoot(), "Directory for autosaves and exports.")
	autosaveDelay := flag.Duration("autosave-delay", persist.DefaultAutosaveDelay, "Quiet period before an autosave is written.")
	flag.Parse()

	autosavePath := filepath.Join(*storageRoot, "autosaves", "autosave.json")

	var st persist.State
	var err error
	switch {
	case *mapPath != "":
		st, err = persist.Load(*mapPath)
		if err != nil {
			log.Fatalf("load %s: %v", *mapPath, err)
		}
	case fileExists(autosavePath):
		st, err = persist.Load(autosavePath)
		if err != nil {
			log.Printf("autosave unreadable, starting fresh: %v", err)
			st = persist.NewState()
		}
	default:
		st = persist.NewState()
	}

	game := NewGame(st, Paths{
		CurrentFile: *mapPath,
		Autosave:    autosavePath,
		ExportRoot:  filepath.Join(*storageRoot, "exports"),
	}, *autosaveDelay)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func defaultStorageRoot() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gridmap")
	}
	return "gridmap-data"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Paths collects where the editor reads and writes files.
type Paths struct {
	CurrentFile string // explicit save target, empty until Save As
	Autosave    string
	ExportRoot  string
}
