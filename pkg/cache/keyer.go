package cache

// ScriptKeyOpts holds the inputs that change an emitted script besides the
// intent graph itself.
type ScriptKeyOpts struct {
	ConfigHash string // hash of the per-node configuration document
	AutoFill   bool
	Generator  string // generator version stamp
}

// Keyer generates cache keys for the artifacts produced by a run.
type Keyer interface {
	// ScriptKey generates a key for an emitted command script.
	ScriptKey(node, intentHash string, opts ScriptKeyOpts) string

	// ComponentsKey generates a key for a resolved and filled component list.
	ComponentsKey(node, intentHash string, opts ScriptKeyOpts) string
}

// DefaultKeyer is the standard key layout: "<kind>:<node>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ScriptKey generates a key for an emitted command script.
func (DefaultKeyer) ScriptKey(node, intentHash string, opts ScriptKeyOpts) string {
	return hashKey("script:"+node, intentHash, opts)
}

// ComponentsKey generates a key for a resolved and filled component list.
func (DefaultKeyer) ComponentsKey(node, intentHash string, opts ScriptKeyOpts) string {
	return hashKey("components:"+node, intentHash, opts)
}

var _ Keyer = DefaultKeyer{}
