package guppiraw

import (
	"path/filepath"
	"strings"

	"github.com/jbrzusto/guppiraw/chunklist"
	"github.com/spf13/cast"
)

// ATA hpguppi_daq keys.
const (
	KeyObservationStem = "OBSSTEM"
	KeyNofBeams        = "NBEAM"
	KeyNofChannels     = "NCHAN"
	KeySampleDatatype  = "DATATYPE"
	KeyObservationID   = "OBSID"
	AntennaNamesPrefix = "ANTNMS" // chunk keys ANTNMS00, ANTNMS01, ...
	AntennaFlagsPrefix = "ANTFLG" // chunk keys ANTFLG00, ANTFLG01, ...
)

// Datatype is the encoding of block samples.
type Datatype string

const (
	DatatypeInteger       Datatype = "INTEGER"
	DatatypeFloatingPoint Datatype = "FLOAT"
)

// ATAHeader is the vocabulary of the hpguppi_daq pipelines at the Allen
// Telescope Array.  COSMIC headers share it.
type ATAHeader struct {
	*HpdaqHeader
}

// ATA returns the ATA view of h, available for ATA and COSMIC headers.
func (h *Header) ATA() (*ATAHeader, bool) {
	if !h.variant.ata() {
		return nil, false
	}
	return &ATAHeader{HpdaqHeader: &HpdaqHeader{Header: h}}, true
}

// ObservationStem returns OBSSTEM, the file name stem of the recording.
func (a *ATAHeader) ObservationStem() (string, error) { return a.store.String(KeyObservationStem) }

// ObservationStemPath joins the output directory and the stem.
func (a *ATAHeader) ObservationStemPath() (string, error) {
	dir, err := a.ObservationOutputDirectoryPath()
	if err != nil {
		return "", err
	}
	stem, err := a.ObservationStem()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stem), nil
}

func (a *ATAHeader) NofBeams() (int, error) { return a.store.IntOr(KeyNofBeams, 0) }

func (a *ATAHeader) SetNofBeams(n int) { a.store.Set(KeyNofBeams, n) }

// NofChannels returns NCHAN, the channels per antenna, defaulting to
// OBSNCHAN/NANTS.
func (a *ATAHeader) NofChannels() (int, error) {
	if a.store.Has(KeyNofChannels) {
		return a.store.Int(KeyNofChannels)
	}
	return a.ObservedNofAntennaChannels()
}

func (a *ATAHeader) SetNofChannels(n int) { a.store.Set(KeyNofChannels, n) }

// SampleDatatype decodes DATATYPE.
func (a *ATAHeader) SampleDatatype() (Datatype, error) {
	s, err := a.store.String(KeySampleDatatype)
	if err != nil {
		return "", err
	}
	switch dt := Datatype(s); dt {
	case DatatypeInteger, DatatypeFloatingPoint:
		return dt, nil
	}
	return "", &UnknownEnumValueError{Key: KeySampleDatatype, Value: s}
}

// ObservationID returns OBSID, or "" when absent.
func (a *ATAHeader) ObservationID() (string, error) { return a.store.StringOr(KeyObservationID, "") }

func (a *ATAHeader) SetObservationID(id string) { a.store.Set(KeyObservationID, id) }

// AntennaNames returns the NANTS names stored under ANTNMS00, ANTNMS01, ...
func (a *ATAHeader) AntennaNames() ([]string, error) {
	nants, err := a.NofAntennas()
	if err != nil {
		return nil, err
	}
	return chunklist.Decode(a.store, AntennaNamesPrefix, nants)
}

// SetAntennaNames stores names across the ANTNMS keys.  NANTS is left
// alone.
func (a *ATAHeader) SetAntennaNames(names []string) error {
	return chunklist.Store(a.store, AntennaNamesPrefix, names)
}

// AntennaFlags returns the NANTS flags stored under ANTFLG00, ANTFLG01, ...
func (a *ATAHeader) AntennaFlags() ([]bool, error) {
	nants, err := a.NofAntennas()
	if err != nil {
		return nil, err
	}
	raw, err := chunklist.Decode(a.store, AntennaFlagsPrefix, nants)
	if err != nil {
		return nil, err
	}
	flags := make([]bool, len(raw))
	for i, s := range raw {
		b, err := cast.ToBoolE(strings.TrimSpace(s))
		if err != nil {
			return nil, &ValueTypeError{Key: AntennaFlagsPrefix, Value: s, Err: err}
		}
		flags[i] = b
	}
	return flags, nil
}

// SetAntennaFlags stores flags as 1 and 0 across the ANTFLG keys.
func (a *ATAHeader) SetAntennaFlags(flags []bool) error {
	raw := make([]string, len(flags))
	for i, f := range flags {
		raw[i] = "0"
		if f {
			raw[i] = "1"
		}
	}
	return chunklist.Store(a.store, AntennaFlagsPrefix, raw)
}
