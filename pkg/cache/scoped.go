package cache

// ScopedKeyer wraps a Keyer with a prefix. The server scopes its keys by
// build version so results from an older sorter are never served.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SortKey generates a prefixed sort result key.
func (k *ScopedKeyer) SortKey(sceneHash string, opts SortKeyOpts) string {
	return k.prefix + k.inner.SortKey(sceneHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sortKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sortKey, opts)
}
