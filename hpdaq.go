package guppiraw

import (
	"path/filepath"
	"time"
)

// hpguppi_daq pipeline keys.
const (
	KeyDataDirectory    = "DATADIR"
	KeyProjectID        = "PROJID"
	KeyBackend          = "BACKEND"
	KeyStartPacketIndex = "PKTSTART"
	KeyStopPacketIndex  = "PKTSTOP"
	KeyDAQPulse         = "DAQPULSE"
)

const (
	// MaxPathComponentLength bounds PROJID and BACKEND when used in paths.
	MaxPathComponentLength = 23

	// PulseLayout is the ctime(3) form hashpipe writes DAQPULSE in.
	PulseLayout = "Mon Jan _2 15:04:05 2006"

	// AliveWindow is how recent DAQPULSE must be for a live pipeline.
	AliveWindow = 2 * time.Second

	defaultPathComponent = "."
	defaultPulse         = "Thu Jan 01 00:00:00 1970"
)

// HpdaqHeader is the vocabulary shared by hpguppi_daq pipelines, whose
// header-blocks pass between pipeline threads as well as landing in
// files.
type HpdaqHeader struct {
	*Header
}

// Hpdaq returns the pipeline view of h.  It is available on every
// non-generic variant.
func (h *Header) Hpdaq() (*HpdaqHeader, bool) {
	if !h.variant.hpdaq() {
		return nil, false
	}
	return &HpdaqHeader{Header: h}, true
}

// DataDirectory returns DATADIR, the root of the recording's output path.
func (p *HpdaqHeader) DataDirectory() (string, error) { return p.store.String(KeyDataDirectory) }

// ProjectID returns PROJID truncated to MaxPathComponentLength.
func (p *HpdaqHeader) ProjectID() (string, error) { return p.pathComponent(KeyProjectID) }

func (p *HpdaqHeader) SetProjectID(id string) { p.store.Set(KeyProjectID, id) }

// Backend returns BACKEND truncated to MaxPathComponentLength.
func (p *HpdaqHeader) Backend() (string, error) { return p.pathComponent(KeyBackend) }

func (p *HpdaqHeader) SetBackend(name string) { p.store.Set(KeyBackend, name) }

func (p *HpdaqHeader) pathComponent(key string) (string, error) {
	s, err := p.store.StringOr(key, defaultPathComponent)
	if err != nil {
		return "", err
	}
	if len(s) > MaxPathComponentLength {
		s = s[:MaxPathComponentLength]
	}
	return s, nil
}

// ObservationOutputDirectoryPath joins DATADIR, PROJID and BACKEND.
func (p *HpdaqHeader) ObservationOutputDirectoryPath() (string, error) {
	dir, err := p.DataDirectory()
	if err != nil {
		return "", err
	}
	proj, err := p.ProjectID()
	if err != nil {
		return "", err
	}
	backend, err := p.Backend()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, proj, backend), nil
}

// StartPacketIndex returns PKTSTART, the first packet index the pipeline
// passes through.
func (p *HpdaqHeader) StartPacketIndex() (int, error) { return p.store.Int(KeyStartPacketIndex) }

func (p *HpdaqHeader) SetStartPacketIndex(n int) { p.store.Set(KeyStartPacketIndex, n) }

// StopPacketIndex returns PKTSTOP, the last packet index the pipeline
// passes through.
func (p *HpdaqHeader) StopPacketIndex() (int, error) { return p.store.Int(KeyStopPacketIndex) }

func (p *HpdaqHeader) SetStopPacketIndex(n int) { p.store.Set(KeyStopPacketIndex, n) }

// Pulse returns DAQPULSE, the pipeline's last heartbeat, in local time.
// An absent pulse is the unix epoch.
func (p *HpdaqHeader) Pulse() (time.Time, error) {
	s, err := p.store.StringOr(KeyDAQPulse, defaultPulse)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(PulseLayout, s, time.Local)
	if err != nil {
		return time.Time{}, &ValueTypeError{Key: KeyDAQPulse, Value: s, Err: err}
	}
	return t, nil
}

// IsAlive reports whether the pulse is within AliveWindow of now.
func (p *HpdaqHeader) IsAlive(now time.Time) (bool, error) {
	pulse, err := p.Pulse()
	if err != nil {
		return false, err
	}
	d := now.Sub(pulse)
	if d < 0 {
		d = -d
	}
	return d < AliveWindow, nil
}
