package models

// ConceptID identifies a perceptual concept derived from a quantized
// place-field center. A composite key is collision-free by construction,
// unlike packed-integer schemes.
type ConceptID struct {
	QX int32 `json:"qx"`
	QY int32 `json:"qy"`
}

// Less orders concepts lexicographically by quantized coordinates.
func (c ConceptID) Less(o ConceptID) bool {
	if c.QX != o.QX {
		return c.QX < o.QX
	}
	return c.QY < o.QY
}

// SynapseKey is the canonical unordered concept pair a synaptic weight is
// keyed by. Construct with NewSynapseKey so (a,b) and (b,a) address the
// same synapse.
type SynapseKey struct {
	Pre  ConceptID `json:"pre"`
	Post ConceptID `json:"post"`
}

// NewSynapseKey returns the canonical key for an unordered concept pair.
func NewSynapseKey(a, b ConceptID) SynapseKey {
	if b.Less(a) {
		a, b = b, a
	}
	return SynapseKey{Pre: a, Post: b}
}
