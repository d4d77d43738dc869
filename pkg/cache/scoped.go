package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can share
// one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "chipA:")
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

// ScriptKey generates a prefixed script key.
func (k *ScopedKeyer) ScriptKey(node, intentHash string, opts ScriptKeyOpts) string {
	return k.prefix + k.inner.ScriptKey(node, intentHash, opts)
}

// ComponentsKey generates a prefixed components key.
func (k *ScopedKeyer) ComponentsKey(node, intentHash string, opts ScriptKeyOpts) string {
	return k.prefix + k.inner.ComponentsKey(node, intentHash, opts)
}
