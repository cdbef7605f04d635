// Package scene describes sortable scenes as data and turns them into live
// [sorter.Sorter] instances.
//
// A scene file lists objects with their sorting anchors, an optional
// footprint and, for dynamic objects, a velocity. Four formats are read:
// TOML, JSON, YAML and HCL. TOML, for example:
//
//	name = "courtyard"
//
//	[[objects]]
//	id = "fountain"
//	p1 = { x = 0, y = 6 }
//	pad = 2
//
//	[[objects]]
//	id = "hedge"
//	kind = "segment"
//	p1 = { x = -8, y = 2 }
//	p2 = { x = 8, y = 5 }
//	pad = 1
//
//	[[objects]]
//	id = "cat"
//	dynamic = true
//	p1 = { x = -4, y = 0 }
//	velocity = { x = 1.5, y = 1 }
//	pad = 1
//
// Objects without an id receive a random UUID when decoded.
//
// [Scene.Build] registers every object with a new Sorter through [Sprite],
// a host adapter that implements both [sorter.Transform] and
// [sorter.Renderer]. [World.Step] advances dynamic sprites along their
// velocity so that the next [World.Update] sees them as moved.
//
// [sorter.Sorter]: github.com/matzehuels/isosort/pkg/sorter.Sorter
// [sorter.Transform]: github.com/matzehuels/isosort/pkg/sorter.Transform
// [sorter.Renderer]: github.com/matzehuels/isosort/pkg/sorter.Renderer
package scene
