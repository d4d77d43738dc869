// Package filler chooses and places the spacer cells that close every gap
// in an I/O ring.
//
// [Chooser] decides which device fills the space between two neighbors.
// [AutoFiller] walks a resolved ring and emits the filler, separator and
// corner-adjacent cells, with the node-specific geometry supplied by a
// [Strategy].
package filler

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/domain"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Chooser picks filler devices from a node's filler table.
type Chooser struct {
	domains *domain.Handler
	table   process.Fillers
	corners process.Corners
}

// NewChooser returns a chooser for cfg.
func NewChooser(cfg *process.Config, domains *domain.Handler) *Chooser {
	return &Chooser{domains: domains, table: cfg.Fillers, corners: cfg.Corners}
}

// Choose returns the device for the space between a and b: the domain's
// standard filler when both share a domain tag and net pair, otherwise the
// separator. When either domain is unknown the digital filler is used.
// The result does not depend on argument order.
func (c *Chooser) Choose(a, b ring.Component) string {
	da, db := c.domains.DomainOf(a), c.domains.DomainOf(b)
	if da == "" || db == "" {
		return c.table.Digital
	}
	if da != db || !c.domains.SameDomain(a, b) {
		return c.table.Separator
	}
	return c.standard(da)
}

// ChooseForCorner applies [Chooser.Choose] to the two pads flanking a chip
// corner. The corner cell itself is never consulted. A missing flank
// yields the separator.
func (c *Chooser) ChooseForCorner(a, b *ring.Component) string {
	if a == nil || b == nil {
		return c.table.Separator
	}
	return c.Choose(*a, *b)
}

// Narrow returns the narrow variant of a standard filler. The separator and
// unknown devices map to the separator.
func (c *Chooser) Narrow(device string) string {
	switch device {
	case c.table.Digital:
		return c.table.DigitalNarrow
	case c.table.Analog:
		return c.table.AnalogNarrow
	}
	return c.table.Separator
}

// IsSeparator reports whether device is the separator.
func (c *Chooser) IsSeparator(device string) bool { return device == c.table.Separator }

// CornerDevice picks the corner cell for corner: the digital corner when
// both flanks are digital, otherwise the analog corner. It satisfies
// [ring.CornerPicker].
func (c *Chooser) CornerDevice(_ ring.Corner, a, b *ring.Component) string {
	if a != nil && b != nil &&
		c.domains.DomainOf(*a) == ring.DomainDigital && c.domains.DomainOf(*b) == ring.DomainDigital {
		return c.corners.Digital
	}
	return c.corners.Analog
}

func (c *Chooser) standard(dom string) string {
	if dom == ring.DomainAnalog {
		return c.table.Analog
	}
	return c.table.Digital
}
