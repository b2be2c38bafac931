package main

import (
	"fmt"
	"io"

	"github.com/jbrzusto/guppiraw"
	"gopkg.in/yaml.v3"
)

// summary is what `show` prints.  Properties that can't be computed are
// omitted and their errors listed under problems.
type summary struct {
	Variant           string   `yaml:"variant"`
	Telescope         *string  `yaml:"telescope,omitempty"`
	SourceName        *string  `yaml:"source_name,omitempty"`
	Blockshape        *[4]int  `yaml:"blockshape,omitempty,flow"`
	ObservedFrequency *float64 `yaml:"observed_frequency,omitempty"`
	ObservedBandwidth *float64 `yaml:"observed_bandwidth,omitempty"`
	ChannelBandwidth  *float64 `yaml:"channel_bandwidth,omitempty"`
	SpectraTimespan   *float64 `yaml:"spectra_timespan,omitempty"`
	RightAscension    *float64 `yaml:"rightascension_hours,omitempty"`
	Declination       *float64 `yaml:"declination_degrees,omitempty"`
	STTMJDDay         *int     `yaml:"stt_mjd_day,omitempty"`
	STTMJDSeconds     *float64 `yaml:"stt_mjd_seconds,omitempty"`
	DirectIO          *bool    `yaml:"directio,omitempty"`
	PacketIndex       *int     `yaml:"packet_index,omitempty"`
	TimeUnix          *float64 `yaml:"time_unix_epoch_seconds,omitempty"`

	OutputDirectory *string  `yaml:"observation_output_directorypath,omitempty"`
	StemPath        *string  `yaml:"observation_stempath,omitempty"`
	AntennaNames    []string `yaml:"antenna_names,omitempty,flow"`
	PhaseCenterRA   *float64 `yaml:"phasecenter_rightascension_hours,omitempty"`
	PhaseCenterDec  *float64 `yaml:"phasecenter_declination_degrees,omitempty"`

	Problems []string `yaml:"problems,omitempty"`
}

// keep returns &v, or records err under name and returns nil.
func keep[T any](s *summary, name string, v T, err error) *T {
	if err != nil {
		s.Problems = append(s.Problems, fmt.Sprintf("%s: %v", name, err))
		return nil
	}
	return &v
}

func summarize(h *guppiraw.Header) *summary {
	s := &summary{Variant: h.Variant().String()}

	tel, err := h.Telescope()
	s.Telescope = keep(s, "telescope", tel, err)
	src, err := h.SourceName()
	s.SourceName = keep(s, "source_name", src, err)
	shape, err := h.Blockshape()
	if p := keep(s, "blockshape", shape, err); p != nil {
		arr := [4]int(*p)
		s.Blockshape = &arr
	}
	freq, err := h.ObservedFrequency()
	s.ObservedFrequency = keep(s, "observed_frequency", freq, err)
	bw, err := h.ObservedBandwidth()
	s.ObservedBandwidth = keep(s, "observed_bandwidth", bw, err)
	chanbw, err := h.ChannelBandwidth()
	s.ChannelBandwidth = keep(s, "channel_bandwidth", chanbw, err)
	tbin, err := h.SpectraTimespan()
	s.SpectraTimespan = keep(s, "spectra_timespan", tbin, err)
	ra, err := h.RightAscensionHours()
	s.RightAscension = keep(s, "rightascension_hours", ra, err)
	dec, err := h.DeclinationDegrees()
	s.Declination = keep(s, "declination_degrees", dec, err)
	day, err := h.STTMJDDay()
	s.STTMJDDay = keep(s, "stt_mjd_day", day, err)
	secs, err := h.STTMJDSeconds()
	s.STTMJDSeconds = keep(s, "stt_mjd_seconds", secs, err)
	dio, err := h.DirectIO()
	s.DirectIO = keep(s, "directio", dio, err)
	pktidx, err := h.PacketIndex()
	s.PacketIndex = keep(s, "packet_index", pktidx, err)
	unix, err := h.TimeUnixEpochSeconds(0, 0)
	s.TimeUnix = keep(s, "time_unix_epoch_seconds", unix, err)

	if p, ok := h.Hpdaq(); ok {
		dir, err := p.ObservationOutputDirectoryPath()
		s.OutputDirectory = keep(s, "observation_output_directorypath", dir, err)
	}
	if a, ok := h.ATA(); ok {
		stem, err := a.ObservationStemPath()
		s.StemPath = keep(s, "observation_stempath", stem, err)
		if names, err := a.AntennaNames(); err != nil {
			keep(s, "antenna_names", names, err)
		} else {
			s.AntennaNames = names
		}
	}
	if c, ok := h.Cosmic(); ok {
		pra, err := c.PhaseCenterRightAscensionHours()
		s.PhaseCenterRA = keep(s, "phasecenter_rightascension_hours", pra, err)
		pdec, err := c.PhaseCenterDeclinationDegrees()
		s.PhaseCenterDec = keep(s, "phasecenter_declination_degrees", pdec, err)
	}
	return s
}

func writeSummary(w io.Writer, s *summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
