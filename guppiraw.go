// Package guppiraw gives semantic names to the keys of a GUPPI RAW
// header.
//
// A GUPPI RAW recording is a sequence of blocks, each a FITS-style
// key-value header followed by complex voltage samples.  Header wraps a
// header.Store and computes the quantities a reader needs from it: block
// shape, bandwidths, pointing, and timing.  The recording backends that
// write these files (hpguppi_daq and its relatives at the ATA, COSMIC at
// the VLA, and MeerKAT) each extend or reinterpret the vocabulary;
// Resolve picks the right Telescope from the TELESCOP key.
//
// Reading samples, DIRECTIO padding and block iteration are the job of the
// file layer.
package guppiraw

import (
	"io"

	"github.com/jbrzusto/guppiraw/fitsrec"
	"github.com/jbrzusto/guppiraw/header"
)

// Header is a GUPPI RAW header interpreted for one Telescope.  Properties
// are recomputed from the store on each call.
type Header struct {
	store   *header.Store
	variant Telescope
}

// NewHeader interprets s as a header from telescope t.  A nil s starts an
// empty header.
func NewHeader(s *header.Store, t Telescope) *Header {
	if s == nil {
		s = header.New()
	}
	return &Header{store: s, variant: t}
}

// Store returns the underlying key-value store.
func (h *Header) Store() *header.Store { return h.store }

// Variant returns the telescope vocabulary chosen at construction.  It
// does not follow later writes to TELESCOP.
func (h *Header) Variant() Telescope { return h.variant }

// Items returns the header's key-value pairs in order.
func (h *Header) Items() []header.Item { return h.store.Items() }

// FITS returns the header as 80-character records ending with END.
func (h *Header) FITS() string { return fitsrec.Encode(h.store.Items()) }

// WriteFITS writes the header records to w.
func (h *Header) WriteFITS(w io.Writer) (int64, error) {
	return fitsrec.Write(w, h.store.Items())
}
