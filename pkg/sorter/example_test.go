package sorter_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/sorter"
)

func Example() {
	s := sorter.New(sorter.Options{})

	var applied []string
	show := func(name string) sorter.Renderer {
		return sorter.RendererFunc(func(order int) {
			applied = append(applied, fmt.Sprintf("%s=%d", name, order))
		})
	}
	tree := sorter.NewObject("tree", false, sorter.FixedPoint(geom.V(0, 5), 3), show("tree"))
	wall := sorter.NewObject("wall", false, sorter.FixedSegment(geom.V(-4, 1), geom.V(4, 3), 1), show("wall"))
	_ = s.Register(tree)
	_ = s.Register(wall)

	s.Update(context.Background())
	fmt.Println(strings.Join(applied, " "))
	for _, o := range s.Order() {
		fmt.Println(o.ID(), "depends on tree:", o.DependsOn(tree))
	}
	// Output:
	// tree=0 wall=2
	// tree depends on tree: false
	// wall depends on tree: true
}
