package process

// Class is the classification of a device name.
type Class int

const (
	ClassUnknown Class = iota
	ClassDigital
	ClassAnalog
	ClassDigitalIO
	ClassCorner
	ClassFiller
	ClassSeparator
)

var classNames = [...]string{"unknown", "digital", "analog", "digital_io", "corner", "filler", "separator"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// Classifier answers set-membership questions for one node's device names.
// It is immutable and safe for concurrent use.
type Classifier struct {
	node    Node
	classes map[string]Class
}

// NewClassifier indexes cfg's device sets.
func NewClassifier(cfg *Config) *Classifier {
	c := &Classifier{node: cfg.Node, classes: make(map[string]Class)}
	add := func(names []string, class Class) {
		for _, n := range names {
			c.classes[n] = class
		}
	}
	add(cfg.Devices.Digital, ClassDigital)
	add(cfg.Devices.Analog, ClassAnalog)
	add(cfg.Devices.DigitalIO, ClassDigitalIO)
	add(cfg.Devices.Corner, ClassCorner)
	add(cfg.Devices.Filler, ClassFiller)
	add(cfg.Devices.Separator, ClassSeparator)
	return c
}

// Node returns the node the classifier was built for.
func (c *Classifier) Node() Node { return c.node }

// Classify returns the set device belongs to.
func (c *Classifier) Classify(device string) Class {
	return c.classes[device]
}

func (c *Classifier) IsDigital(device string) bool   { return c.classes[device] == ClassDigital }
func (c *Classifier) IsAnalog(device string) bool    { return c.classes[device] == ClassAnalog }
func (c *Classifier) IsDigitalIO(device string) bool { return c.classes[device] == ClassDigitalIO }
func (c *Classifier) IsCorner(device string) bool    { return c.classes[device] == ClassCorner }
func (c *Classifier) IsFiller(device string) bool    { return c.classes[device] == ClassFiller }
func (c *Classifier) IsSeparator(device string) bool { return c.classes[device] == ClassSeparator }
