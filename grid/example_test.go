package grid_test

import (
	"fmt"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
)

func ExampleGrid_SnapCenter() {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	// A 3x3 footprint centered near the cursor lands on whole cells.
	topLeft := g.SnapCenter(geom.Point{X: 105, Y: 203}, 3, 3)
	fmt.Println(topLeft.X, topLeft.Y)
	// Output: 80 180
}

func ExampleGrid_SceneToCell() {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	fmt.Println(g.SceneToCell(0))
	fmt.Println(g.SceneToCell(39.9))
	fmt.Println(g.SceneToCell(40))
	// Output:
	// 0
	// 1
	// 2
}
