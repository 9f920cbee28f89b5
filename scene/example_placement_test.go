package scene_test

import (
	"fmt"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
	"github.com/plus3/gridmap/scene"
)

func ExamplePlacementEngine_Place() {
	s := scene.NewScene(grid.Grid{CellSize: 20, Extent: 1000})

	spec := scene.NewObjectSpec("Furnace", 4, 4, scene.DefaultObjectFill)
	spec.Limit = 1
	spec.LimitKey = "furnace"

	s.Placement().Activate(spec)
	o, _ := s.Placement().Place(geom.Point{X: 210, Y: 210}, false)
	fmt.Println(o.Spec.Name, s.Registry().ObjectCount())

	// A limit of one replaces the previous instance instead of failing.
	s.Placement().Activate(spec)
	s.Placement().Place(geom.Point{X: 600, Y: 600}, false)
	fmt.Println(s.Registry().ObjectCount())
	// Output:
	// Furnace 1
	// 1
}
