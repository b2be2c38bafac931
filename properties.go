package guppiraw

import (
	"github.com/jbrzusto/guppiraw/header"
)

// Header keys.
const (
	KeyBlocksize         = "BLOCSIZE" // bytes of block data
	KeyObservedNofChans  = "OBSNCHAN" // channels in the block, all antennas
	KeyNofPolarizations  = "NPOL"     // polarizations per sample
	KeyNofBits           = "NBITS"    // bits per real or imaginary component
	KeyNofAntennas       = "NANTS"    // antennas (aspects) in the block
	KeyDirectIO          = "DIRECTIO" // header padded to a 512-byte boundary
	KeyObservedFrequency = "OBSFREQ"  // center frequency, MHz
	KeyObservedBandwidth = "OBSBW"    // bandwidth of the block, MHz
	KeyChannelBandwidth  = "CHAN_BW"  // bandwidth of one channel, MHz
	KeySpectraTimespan   = "TBIN"     // seconds per spectrum
	KeyPacketIndex       = "PKTIDX"   // first packet index of the block
	KeyRightAscension    = "RA_STR"   // pointing, hours, sexagesimal
	KeyDeclination       = "DEC_STR"  // pointing, degrees, sexagesimal
	KeySTTMJDDay         = "STT_IMJD" // MJD day of the first sample
	KeySTTMJDSeconds     = "STT_SMJD" // seconds into that day
	KeySourceName        = "SRC_NAME"
	KeyTelescope         = "TELESCOP"
	KeyChannelsOffset    = "SCHAN"    // first channel within the full observation
	KeyPIPerBlock        = "PIPERBLK" // packet indices spanned by a block
	KeySyncTime          = "SYNCTIME" // unix seconds of packet index 0
)

// Defaults for optional keys.
const (
	DefaultNofBits     = 8
	DefaultNofAntennas = 1
	DefaultSTTMJDDay   = 51545 // J2000
	DefaultSourceName  = "Unknown"
	defaultSexagesimal = "0.0"
)

// Blockshape axes, slowest to fastest.
const (
	AxisAntenna = iota
	AxisChannel
	AxisSpectrum
	AxisPolarization
)

// Blockshape is the 4-dimensional shape of the complex block data,
// indexed by the Axis constants.
type Blockshape [4]int

// Blocksize returns BLOCSIZE.
func (h *Header) Blocksize() (int, error) { return h.store.Int(KeyBlocksize) }

func (h *Header) SetBlocksize(n int) { h.store.Set(KeyBlocksize, n) }

// ObservedNofChannels returns OBSNCHAN, the channel count across all
// antennas.
func (h *Header) ObservedNofChannels() (int, error) { return h.store.Int(KeyObservedNofChans) }

func (h *Header) SetObservedNofChannels(n int) { h.store.Set(KeyObservedNofChans, n) }

// NofPolarizations returns NPOL.  MeerKAT headers count the complex
// components of each polarization, so an NPOL of 4 there reads as 2.
func (h *Header) NofPolarizations() (int, error) {
	n, err := h.store.Int(KeyNofPolarizations)
	if err != nil {
		return 0, err
	}
	if h.variant == MeerKAT && n == 4 {
		return 2, nil
	}
	return n, nil
}

// SetNofPolarizations stores n as given, on every variant.
func (h *Header) SetNofPolarizations(n int) { h.store.Set(KeyNofPolarizations, n) }

func (h *Header) NofBits() (int, error) { return h.store.IntOr(KeyNofBits, DefaultNofBits) }

func (h *Header) SetNofBits(n int) { h.store.Set(KeyNofBits, n) }

func (h *Header) NofAntennas() (int, error) { return h.store.IntOr(KeyNofAntennas, DefaultNofAntennas) }

func (h *Header) SetNofAntennas(n int) { h.store.Set(KeyNofAntennas, n) }

// ObservedNofAntennaChannels returns OBSNCHAN/NANTS, the channels of one
// antenna.
func (h *Header) ObservedNofAntennaChannels() (int, error) {
	nchan, err := h.ObservedNofChannels()
	if err != nil {
		return 0, err
	}
	nants, err := h.NofAntennas()
	if err != nil {
		return 0, err
	}
	return factorDivision(nchan, nants)
}

// NofSpectraPerBlock returns the time samples in a block: the block's bits
// over the bits of one complex spectrum across all channels and
// polarizations.
func (h *Header) NofSpectraPerBlock() (int, error) {
	blocsize, err := h.Blocksize()
	if err != nil {
		return 0, err
	}
	nchan, err := h.ObservedNofChannels()
	if err != nil {
		return 0, err
	}
	npol, err := h.NofPolarizations()
	if err != nil {
		return 0, err
	}
	nbits, err := h.NofBits()
	if err != nil {
		return 0, err
	}
	return factorDivision(blocsize*8, nchan*npol*2*nbits)
}

// Blockshape returns (antennas, antenna channels, spectra, polarizations).
func (h *Header) Blockshape() (Blockshape, error) {
	var shape Blockshape
	var err error
	if shape[AxisAntenna], err = h.NofAntennas(); err != nil {
		return Blockshape{}, err
	}
	if shape[AxisChannel], err = h.ObservedNofAntennaChannels(); err != nil {
		return Blockshape{}, err
	}
	if shape[AxisSpectrum], err = h.NofSpectraPerBlock(); err != nil {
		return Blockshape{}, err
	}
	if shape[AxisPolarization], err = h.NofPolarizations(); err != nil {
		return Blockshape{}, err
	}
	return shape, nil
}

// DirectIO reports whether the header is padded so block data starts on a
// 512-byte boundary.
func (h *Header) DirectIO() (bool, error) { return h.store.BoolOr(KeyDirectIO, false) }

// SetDirectIO stores DIRECTIO as 1 or 0, the form hashpipe readers expect.
func (h *Header) SetDirectIO(on bool) {
	v := 0
	if on {
		v = 1
	}
	h.store.Set(KeyDirectIO, v)
}

func (h *Header) ObservedFrequency() (float64, error) { return h.store.Float(KeyObservedFrequency) }

func (h *Header) SetObservedFrequency(f float64) { h.store.Set(KeyObservedFrequency, f) }

func (h *Header) ObservedBandwidth() (float64, error) { return h.store.Float(KeyObservedBandwidth) }

func (h *Header) SetObservedBandwidth(f float64) { h.store.Set(KeyObservedBandwidth, f) }

// ChannelBandwidth returns the bandwidth of one channel.
//
// Generic headers derive it as OBSBW over the antenna channels.  ATA and
// COSMIC read CHAN_BW, falling back to 1/TBIN.  MeerKAT requires CHAN_BW.
func (h *Header) ChannelBandwidth() (float64, error) {
	switch {
	case h.variant == MeerKAT:
		return h.store.Float(KeyChannelBandwidth)
	case h.variant.ata():
		if h.store.Has(KeyChannelBandwidth) {
			return h.store.Float(KeyChannelBandwidth)
		}
		tbin, err := h.SpectraTimespan()
		if err != nil {
			return 0, err
		}
		return 1.0 / tbin, nil
	}
	obsbw, err := h.ObservedBandwidth()
	if err != nil {
		return 0, err
	}
	nchan, err := h.ObservedNofAntennaChannels()
	if err != nil {
		return 0, err
	}
	return obsbw / float64(nchan), nil
}

// SetChannelBandwidth writes the channel bandwidth through OBSBW: it
// stores OBSBW = ObservedNofAntennaChannels * bw, so changing a channel's
// width changes the block's total bandwidth, not its channel count.  ATA
// and COSMIC also store CHAN_BW.  MeerKAT stores only CHAN_BW.
func (h *Header) SetChannelBandwidth(bw float64) error {
	if h.variant == MeerKAT {
		h.store.Set(KeyChannelBandwidth, bw)
		return nil
	}
	nchan, err := h.ObservedNofAntennaChannels()
	if err != nil {
		return err
	}
	h.SetObservedBandwidth(float64(nchan) * bw)
	if h.variant.ata() {
		h.store.Set(KeyChannelBandwidth, bw)
	}
	return nil
}

// SpectraTimespan returns TBIN, the seconds spanned by one spectrum.
func (h *Header) SpectraTimespan() (float64, error) { return h.store.Float(KeySpectraTimespan) }

func (h *Header) SetSpectraTimespan(s float64) { h.store.Set(KeySpectraTimespan, s) }

func (h *Header) PacketIndex() (int, error) { return h.store.Int(KeyPacketIndex) }

func (h *Header) SetPacketIndex(n int) { h.store.Set(KeyPacketIndex, n) }

// RightAscensionString returns RA_STR as stored.
func (h *Header) RightAscensionString() (string, error) {
	return h.store.StringOr(KeyRightAscension, defaultSexagesimal)
}

func (h *Header) SetRightAscensionString(s string) { h.store.Set(KeyRightAscension, s) }

// RightAscensionHours parses RA_STR.
func (h *Header) RightAscensionHours() (float64, error) {
	return h.sexagesimal(KeyRightAscension, h.store.GetOr(KeyRightAscension, defaultSexagesimal))
}

func (h *Header) SetRightAscensionHours(hours float64) {
	h.store.Set(KeyRightAscension, DefaultSexagesimal.Format(hours))
}

// DeclinationString returns DEC_STR as stored.
func (h *Header) DeclinationString() (string, error) {
	return h.store.StringOr(KeyDeclination, defaultSexagesimal)
}

func (h *Header) SetDeclinationString(s string) { h.store.Set(KeyDeclination, s) }

// DeclinationDegrees parses DEC_STR.
func (h *Header) DeclinationDegrees() (float64, error) {
	return h.sexagesimal(KeyDeclination, h.store.GetOr(KeyDeclination, defaultSexagesimal))
}

func (h *Header) SetDeclinationDegrees(deg float64) {
	h.store.Set(KeyDeclination, DefaultSexagesimal.Format(deg))
}

func (h *Header) sexagesimal(key string, v interface{}) (float64, error) {
	f, err := FromSexagesimal(v)
	if err != nil {
		return 0, &header.ValueTypeError{Key: key, Value: v, Err: err}
	}
	return f, nil
}

func (h *Header) STTMJDDay() (int, error) { return h.store.IntOr(KeySTTMJDDay, DefaultSTTMJDDay) }

func (h *Header) SetSTTMJDDay(day int) { h.store.Set(KeySTTMJDDay, day) }

func (h *Header) STTMJDSeconds() (float64, error) { return h.store.FloatOr(KeySTTMJDSeconds, 0) }

func (h *Header) SetSTTMJDSeconds(s float64) { h.store.Set(KeySTTMJDSeconds, s) }

func (h *Header) SourceName() (string, error) {
	return h.store.StringOr(KeySourceName, DefaultSourceName)
}

func (h *Header) SetSourceName(name string) { h.store.Set(KeySourceName, name) }

// ObservedChannelsOffset returns SCHAN, the index of the block's first
// channel within the whole observation.
func (h *Header) ObservedChannelsOffset() (int, error) { return h.store.IntOr(KeyChannelsOffset, 0) }

func (h *Header) SetObservedChannelsOffset(n int) { h.store.Set(KeyChannelsOffset, n) }

// NofPacketIndicesPerBlock returns PIPERBLK, defaulting to the spectra per
// block.
func (h *Header) NofPacketIndicesPerBlock() (int, error) {
	if h.store.Has(KeyPIPerBlock) {
		return h.store.Int(KeyPIPerBlock)
	}
	return h.NofSpectraPerBlock()
}

func (h *Header) SetNofPacketIndicesPerBlock(n int) { h.store.Set(KeyPIPerBlock, n) }

// TimeUnixOffset returns SYNCTIME, the unix seconds of packet index 0.
func (h *Header) TimeUnixOffset() (int, error) { return h.store.IntOr(KeySyncTime, 0) }

func (h *Header) SetTimeUnixOffset(s int) { h.store.Set(KeySyncTime, s) }

// TimeUnixEpochSeconds returns the unix time of a sample in the block,
// packetIndexOffset packets and spectraIndexOffset spectra past the
// block's first.  Zero offsets give the block start.
func (h *Header) TimeUnixEpochSeconds(packetIndexOffset, spectraIndexOffset int) (float64, error) {
	sync, err := h.TimeUnixOffset()
	if err != nil {
		return 0, err
	}
	pktidx, err := h.PacketIndex()
	if err != nil {
		return 0, err
	}
	piperblk, err := h.NofPacketIndicesPerBlock()
	if err != nil {
		return 0, err
	}
	if piperblk == 0 {
		return 0, &NonFactorDivisionError{Dividend: pktidx + packetIndexOffset, Divisor: 0}
	}
	nspec, err := h.NofSpectraPerBlock()
	if err != nil {
		return 0, err
	}
	tbin, err := h.SpectraTimespan()
	if err != nil {
		return 0, err
	}
	blocks := float64(pktidx+packetIndexOffset) / float64(piperblk)
	return float64(sync) + (blocks*float64(nspec)+float64(spectraIndexOffset))*tbin, nil
}
