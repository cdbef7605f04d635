// Package iso decides which of two sprites is in front in an isometric
// projection.
//
// Sprites are reduced to a [Shape]: either a single anchor point (a
// character, a crate, a tree) or a segment between two anchors (a wall or
// fence running diagonally across the grid). [Compare] returns a [Verdict]
// for one pair:
//
//   - Point vs point: the higher anchor (larger Y) is further back; equal
//     heights fall back to X, larger X further back.
//   - Point vs segment: the point is classified against the infinite line
//     through the segment. Points strictly above or below both endpoints
//     are decided without computing the line.
//   - Segment vs segment: each segment's endpoints are classified against
//     the other's line. Consistent evidence wins; contradictory or missing
//     evidence falls back to comparing the segments' midpoints.
//
// A vertical segment has no slope. Points within its height are ordered by
// X like two points of equal height: left of the segment is in front,
// right of it behind, exactly on it undetermined.
//
// Compare never looks at footprints. The sorter prunes pairs whose
// footprints do not overlap before asking for a verdict.
package iso
