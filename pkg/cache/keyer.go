package cache

// Key prefixes, also reported as the keyType of cache hooks.
const (
	KindSort     = "sort"
	KindArtifact = "artifact"
)

// SortKeyOpts lists the options that change a sort result.
type SortKeyOpts struct {
	Frames      int     `json:"frames"`
	Step        float64 `json:"step"`
	CyclePasses int     `json:"cycle_passes"`
	OrderStep   int     `json:"order_step"`
}

// ArtifactKeyOpts lists the options that change a rendered graph.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SortKey identifies the sort result of a scene.
	SortKey(sceneHash string, opts SortKeyOpts) string
	// ArtifactKey identifies a rendering of a sort result.
	ArtifactKey(sortKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes its inputs into "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SortKey implements Keyer.
func (DefaultKeyer) SortKey(sceneHash string, opts SortKeyOpts) string {
	return hashKey(KindSort, sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sortKey string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, sortKey, opts)
}
