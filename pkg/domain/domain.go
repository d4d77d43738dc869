// Package domain derives the voltage domain of ring components and compares
// domains between neighbors.
package domain

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Handler answers voltage-domain questions for one process node.
type Handler struct {
	classifier *process.Classifier
}

// NewHandler returns a handler that falls back to classifier for
// components without an explicit domain tag.
func NewHandler(classifier *process.Classifier) *Handler {
	return &Handler{classifier: classifier}
}

// Classifier returns the underlying device classifier.
func (h *Handler) Classifier() *process.Classifier { return h.classifier }

// DomainOf returns ring.DomainDigital, ring.DomainAnalog, or "" when the
// component carries no tag and its device is in neither family.
func (h *Handler) DomainOf(c ring.Component) string {
	if c.Domain != "" {
		return c.Domain
	}
	switch h.classifier.Classify(c.Device) {
	case process.ClassDigital, process.ClassDigitalIO:
		return ring.DomainDigital
	case process.ClassAnalog:
		return ring.DomainAnalog
	}
	return ""
}

// SameDomain reports whether a and b belong to one voltage domain. When
// both declare nets the power and ground names must match; otherwise the
// domain tags decide.
func (h *Handler) SameDomain(a, b ring.Component) bool {
	if a.Nets != nil && b.Nets != nil {
		return *a.Nets == *b.Nets && h.DomainOf(a) == h.DomainOf(b)
	}
	return h.DomainOf(a) == h.DomainOf(b)
}

// IsProvider reports whether c is the pad that sources one of its own nets:
// a pad named after its power or ground net.
func (h *Handler) IsProvider(c ring.Component) bool {
	if !c.IsPad() || c.Nets == nil {
		return false
	}
	return c.Name == c.Nets.Power || c.Name == c.Nets.Ground
}

// IsDigitalIO reports whether c is a digital-IO pad with a direction.
// A pad without a direction is never treated as digital IO.
func (h *Handler) IsDigitalIO(c ring.Component) bool {
	return c.IsPad() && c.IODirection != ring.DirectionNone && h.classifier.IsDigitalIO(c.Device)
}
