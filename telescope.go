package guppiraw

import (
	"github.com/jbrzusto/guppiraw/header"
)

// Telescope selects the vocabulary a header is read with.
type Telescope int

const (
	Generic Telescope = iota // plain GUPPI RAW
	ATA                      // hpguppi_daq at the Allen Telescope Array
	COSMIC                   // COSMIC at the VLA; ATA vocabulary plus phase center
	MeerKAT                  // hpguppi_daq at MeerKAT
)

// UnknownTelescope is the TELESCOP value of a header that names none.
const UnknownTelescope = "Unknown"

var telescopeTags = [...]string{
	Generic: UnknownTelescope,
	ATA:     "ATA",
	COSMIC:  "COSMIC",
	MeerKAT: "MeerKAT",
}

// String returns the TELESCOP value of t.
func (t Telescope) String() string {
	if t < 0 || int(t) >= len(telescopeTags) {
		return UnknownTelescope
	}
	return telescopeTags[t]
}

// hpdaq reports whether t is written by an hpguppi_daq pipeline.
func (t Telescope) hpdaq() bool { return t == ATA || t == COSMIC || t == MeerKAT }

// ata reports whether t uses the ATA vocabulary.
func (t Telescope) ata() bool { return t == ATA || t == COSMIC }

// resolveOrder is the order variants are matched against TELESCOP.
var resolveOrder = []Telescope{ATA, COSMIC, MeerKAT}

// Resolve interprets s with the Telescope named by its TELESCOP key.
// Matching is exact and case-sensitive; anything else, including a missing
// key, gives Generic.
func Resolve(s *header.Store) *Header {
	if s == nil {
		s = header.New()
	}
	tag, err := s.StringOr(KeyTelescope, UnknownTelescope)
	if err != nil {
		return NewHeader(s, Generic)
	}
	for _, t := range resolveOrder {
		if tag == t.String() {
			return NewHeader(s, t)
		}
	}
	return NewHeader(s, Generic)
}

// Telescope returns TELESCOP.  A non-generic header defaults to its own
// tag.
func (h *Header) Telescope() (string, error) {
	return h.store.StringOr(KeyTelescope, h.variant.String())
}

// SetTelescope stores name in TELESCOP.  A non-generic header always
// stores its own tag instead.
func (h *Header) SetTelescope(name string) {
	if h.variant != Generic {
		name = h.variant.String()
	}
	h.store.Set(KeyTelescope, name)
}
