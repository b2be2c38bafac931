package guppiraw

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jbrzusto/guppiraw/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		telescop interface{}
		want     Telescope
	}{
		{"ATA", ATA},
		{"COSMIC", COSMIC},
		{"MeerKAT", MeerKAT},
		{"meerkat", Generic},
		{"GBT", Generic},
		{42, Generic},
	}
	for _, c := range cases {
		h := Resolve(header.New(kv{Key: "TELESCOP", Value: c.telescop}))
		assert.Equal(t, c.want, h.Variant(), "TELESCOP=%v", c.telescop)
	}

	h := Resolve(header.New(kv{Key: "SRC_NAME", Value: "Unknown"}))
	assert.Equal(t, Generic, h.Variant())
	tel, err := h.Telescope()
	require.NoError(t, err)
	assert.Equal(t, "Unknown", tel)

	assert.Equal(t, Generic, Resolve(nil).Variant())
}

func TestTelescopeString(t *testing.T) {
	assert.Equal(t, "Unknown", Generic.String())
	assert.Equal(t, "COSMIC", COSMIC.String())
	assert.Equal(t, "Unknown", Telescope(99).String())
}

func TestTelescopePinned(t *testing.T) {
	for _, v := range []Telescope{ATA, COSMIC, MeerKAT} {
		h := NewHeader(nil, v)
		tel, err := h.Telescope()
		require.NoError(t, err)
		assert.Equal(t, v.String(), tel)

		h.SetTelescope("GBT")
		assert.Equal(t, v.String(), h.Store().GetOr("TELESCOP", nil))
	}
}

func TestVariantViews(t *testing.T) {
	g := NewHeader(nil, Generic)
	_, ok := g.Hpdaq()
	assert.False(t, ok)
	_, ok = g.ATA()
	assert.False(t, ok)

	m := NewHeader(nil, MeerKAT)
	_, ok = m.Hpdaq()
	assert.True(t, ok)
	_, ok = m.ATA()
	assert.False(t, ok)

	a := NewHeader(nil, ATA)
	_, ok = a.ATA()
	assert.True(t, ok)
	_, ok = a.Cosmic()
	assert.False(t, ok)

	c := NewHeader(nil, COSMIC)
	_, ok = c.ATA()
	assert.True(t, ok)
	_, ok = c.Cosmic()
	assert.True(t, ok)
}

func TestCosmicPhaseCenter(t *testing.T) {
	h := Resolve(header.New(kv{Key: "TELESCOP", Value: "COSMIC"}))
	require.Equal(t, COSMIC, h.Variant())
	c, ok := h.Cosmic()
	require.True(t, ok)

	_, err := c.PhaseCenterRightAscensionHours()
	var mk *MissingKeyError
	require.True(t, errors.As(err, &mk))
	assert.Equal(t, "RA_PHAS", mk.Key)

	c.SetPhaseCenterRightAscensionHours(19.991)
	c.SetPhaseCenterDeclinationDegrees(-0.25)
	ra, err := c.PhaseCenterRightAscensionHours()
	require.NoError(t, err)
	assert.InEpsilon(t, 19.991, ra, 1e-13)
	dec, err := c.PhaseCenterDeclinationDegrees()
	require.NoError(t, err)
	assert.InEpsilon(t, -0.25, dec, 1e-13)
	assert.True(t, strings.HasPrefix(h.Store().GetOr("DEC_PHAS", "").(string), "-0:15:"))
}

func TestHpdaqPaths(t *testing.T) {
	h := NewHeader(header.New(
		kv{Key: "DATADIR", Value: "/mnt/buf0"},
		kv{Key: "PROJID", Value: strings.Repeat("p", 30)},
		kv{Key: "OBSSTEM", Value: "guppi_59000_0001"},
	), ATA)
	a, ok := h.ATA()
	require.True(t, ok)

	proj, err := a.ProjectID()
	require.NoError(t, err)
	assert.Len(t, proj, MaxPathComponentLength)

	dir, err := a.ObservationOutputDirectoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/mnt/buf0", proj, "."), dir)

	a.SetBackend("GUPPI")
	stem, err := a.ObservationStemPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/mnt/buf0", proj, "GUPPI", "guppi_59000_0001"), stem)

	m, _ := NewHeader(nil, MeerKAT).Hpdaq()
	_, err = m.ObservationOutputDirectoryPath()
	var mk *MissingKeyError
	require.True(t, errors.As(err, &mk))
	assert.Equal(t, "DATADIR", mk.Key)
}

func TestHpdaqPacketRange(t *testing.T) {
	p, _ := NewHeader(nil, MeerKAT).Hpdaq()
	_, err := p.StartPacketIndex()
	require.Error(t, err)
	p.SetStartPacketIndex(100)
	p.SetStopPacketIndex(200)
	start, err := p.StartPacketIndex()
	require.NoError(t, err)
	stop, err := p.StopPacketIndex()
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, []int{start, stop})
}

func TestHpdaqPulse(t *testing.T) {
	p, _ := NewHeader(nil, ATA).Hpdaq()
	pulse, err := p.Pulse()
	require.NoError(t, err)
	assert.Equal(t, 1970, pulse.Year())

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local)
	p.Store().Set(KeyDAQPulse, now.Add(-time.Second).Format(PulseLayout))
	alive, err := p.IsAlive(now)
	require.NoError(t, err)
	assert.True(t, alive)

	alive, err = p.IsAlive(now.Add(5 * time.Second))
	require.NoError(t, err)
	assert.False(t, alive)

	p.Store().Set(KeyDAQPulse, "yesterday")
	_, err = p.IsAlive(now)
	var vt *ValueTypeError
	assert.True(t, errors.As(err, &vt))
}

func TestATAVocabulary(t *testing.T) {
	h := NewHeader(header.New(
		kv{Key: "NANTS", Value: 4},
		kv{Key: "OBSNCHAN", Value: 1024},
		kv{Key: "DATATYPE", Value: "INTEGER"},
	), ATA)
	a, _ := h.ATA()

	nchan, err := a.NofChannels()
	require.NoError(t, err)
	assert.Equal(t, 256, nchan)
	a.SetNofChannels(192)
	nchan, err = a.NofChannels()
	require.NoError(t, err)
	assert.Equal(t, 192, nchan)

	beams, err := a.NofBeams()
	require.NoError(t, err)
	assert.Equal(t, 0, beams)
	a.SetNofBeams(3)
	beams, err = a.NofBeams()
	require.NoError(t, err)
	assert.Equal(t, 3, beams)

	dt, err := a.SampleDatatype()
	require.NoError(t, err)
	assert.Equal(t, DatatypeInteger, dt)

	h.Store().Set("DATATYPE", "COMPLEX")
	_, err = a.SampleDatatype()
	var ue *UnknownEnumValueError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "COMPLEX", ue.Value)

	id, err := a.ObservationID()
	require.NoError(t, err)
	assert.Equal(t, "", id)
	a.SetObservationID("obs-42")
	id, err = a.ObservationID()
	require.NoError(t, err)
	assert.Equal(t, "obs-42", id)

	_, err = a.ObservationStem()
	assert.Error(t, err)
}

func TestATAAntennas(t *testing.T) {
	names := make([]string, 3)
	for i := range names {
		names[i] = fmt.Sprintf("antenna-%015d", i) // 23 characters
	}
	h := NewHeader(header.New(kv{Key: "NANTS", Value: 3}), ATA)
	a, _ := h.ATA()
	require.NoError(t, a.SetAntennaNames(names))
	assert.Equal(t, []string{"NANTS", "ANTNMS00", "ANTNMS01"}, h.Store().Keys())

	got, err := a.AntennaNames()
	require.NoError(t, err)
	assert.Equal(t, names, got)

	require.NoError(t, a.SetAntennaFlags([]bool{true, false, true}))
	flags, err := a.AntennaFlags()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, flags)
	assert.Equal(t, "1,0,1", h.Store().GetOr("ANTFLG00", nil))

	h.Store().Set("ANTFLG00", "1,maybe,0")
	_, err = a.AntennaFlags()
	var vt *ValueTypeError
	assert.True(t, errors.As(err, &vt))

	h.SetNofAntennas(5)
	_, err = a.AntennaNames()
	var mk *MissingKeyError
	require.True(t, errors.As(err, &mk))
	assert.Equal(t, "ANTNMS02", mk.Key)
}

func TestFITSExport(t *testing.T) {
	h := Resolve(header.New(kv{Key: "SRC_NAME", Value: "TEST"}))
	out := h.FITS()
	require.Len(t, out, 160)
	assert.Equal(t, "SRC_NAME='TEST'"+strings.Repeat(" ", 65), out[:80])
	assert.Equal(t, "END"+strings.Repeat(" ", 77), out[80:])

	var buf bytes.Buffer
	n, err := h.WriteFITS(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(160), n)
	assert.Equal(t, out, buf.String())
	assert.Equal(t, h.Store().Items(), h.Items())
}

func TestValidate(t *testing.T) {
	err := NewHeader(nil, Generic).Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 7)

	h := generic(
		kv{Key: "BLOCSIZE", Value: 1000},
		kv{Key: "OBSNCHAN", Value: 3},
		kv{Key: "NPOL", Value: 2},
		kv{Key: "OBSFREQ", Value: 1420.0},
		kv{Key: "OBSBW", Value: 3.0},
		kv{Key: "TBIN", Value: 1e-6},
		kv{Key: "PKTIDX", Value: 0},
	)
	err = h.Validate()
	var nf *NonFactorDivisionError
	require.True(t, errors.As(err, &nf))

	h.SetBlocksize(3 * 2 * 2 * 100)
	assert.NoError(t, h.Validate())
}
