package guppiraw

import (
	"go.uber.org/multierr"
)

// Validate reads every required core property and the block shape,
// returning all failures combined.  A nil result means a block reader can
// size and time the block data.
func (h *Header) Validate() error {
	var err error
	check := func(e error) { err = multierr.Append(err, e) }

	_, e := h.Blocksize()
	check(e)
	_, e = h.ObservedNofChannels()
	check(e)
	_, e = h.NofPolarizations()
	check(e)
	_, e = h.NofBits()
	check(e)
	_, e = h.NofAntennas()
	check(e)
	_, e = h.ObservedFrequency()
	check(e)
	_, e = h.ObservedBandwidth()
	check(e)
	_, e = h.SpectraTimespan()
	check(e)
	_, e = h.PacketIndex()
	check(e)

	// the shape repeats any missing-key error above
	if err == nil {
		_, e = h.Blockshape()
		check(e)
	}
	return err
}
