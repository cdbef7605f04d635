// Package pkg holds the libraries behind isosort, a draw-order sorter for
// isometric 2D scenes.
//
// # Overview
//
// In an isometric view, sprites further "up" the screen are further away
// and must be drawn first. A single Y sort breaks down as soon as sprites
// are long diagonal walls or overlap in odd ways, so isosort compares pairs
// of sprites geometrically, builds a dependency graph from the verdicts and
// sorts that graph topologically. Sprites that never move are compared once;
// moving sprites are compared again every frame.
//
// # Architecture
//
//	scene file (TOML, JSON, YAML, HCL)
//	         ↓
//	    [scene]     decode, validate, build sprites
//	         ↓
//	    [sorter]    static + dynamic dependency edges, cycle breaking,
//	                topological order (comparisons from [iso])
//	         ↓
//	    [depgraph]  snapshot of the frame's graph
//	         ↓
//	    [render/dot] DOT, SVG, PNG
//
// [pipeline] strings these stages together behind a [cache], and both the
// CLI (internal/cli) and the HTTP API ([server]) go through it.
//
// # Packages
//
// Sorting:
//   - [geom]: vectors and axis-aligned rectangles
//   - [iso]: sprite shapes (points and segments) and the pairwise comparator
//   - [sorter]: the registry of sortable objects and the per-frame sort
//   - [depgraph]: read-only snapshots of a frame's dependency graph
//
// Scenes and output:
//   - [scene]: scene files, host sprites and simple motion
//   - [render/dot]: Graphviz rendering of snapshots
//   - [pipeline]: cached sort and render runs
//   - [server]: HTTP API
//
// Support:
//   - [cache]: file, Redis and no-op caches with key derivation
//   - [config]: TOML settings
//   - [errors]: coded errors and input validation
//   - [observability]: frame, cache and HTTP hooks
//   - [buildinfo]: version stamping
//
// # Quick Start
//
//	s, err := scene.Load("courtyard.toml")
//	if err != nil {
//	    return err
//	}
//	w, err := s.Build(sorter.Options{})
//	if err != nil {
//	    return err
//	}
//	for frame := 0; frame < 60; frame++ {
//	    w.Step(1.0 / 60)
//	    w.Update(ctx)
//	}
//	for _, e := range w.Entries() {
//	    fmt.Println(e.Order, e.ID)
//	}
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/geom
// [iso]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/iso
// [sorter]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/sorter
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/depgraph
// [scene]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/scene
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/isosort/pkg/buildinfo
package pkg
