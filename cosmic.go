package guppiraw

// COSMIC keys.
const (
	KeyPhaseCenterRightAscension = "RA_PHAS"  // hours, sexagesimal
	KeyPhaseCenterDeclination    = "DEC_PHAS" // degrees, sexagesimal
)

// CosmicHeader is the ATA vocabulary plus the beamformer phase center recorded
// by COSMIC at the VLA.
type CosmicHeader struct {
	*ATAHeader
}

// Cosmic returns the COSMIC view of h.
func (h *Header) Cosmic() (*CosmicHeader, bool) {
	if h.variant != COSMIC {
		return nil, false
	}
	ata, _ := h.ATA()
	return &CosmicHeader{ATAHeader: ata}, true
}

// PhaseCenterRightAscensionHours parses the required RA_PHAS.
func (c *CosmicHeader) PhaseCenterRightAscensionHours() (float64, error) {
	v, err := c.store.Get(KeyPhaseCenterRightAscension)
	if err != nil {
		return 0, err
	}
	return c.sexagesimal(KeyPhaseCenterRightAscension, v)
}

func (c *CosmicHeader) SetPhaseCenterRightAscensionHours(hours float64) {
	c.store.Set(KeyPhaseCenterRightAscension, DefaultSexagesimal.Format(hours))
}

// PhaseCenterDeclinationDegrees parses the required DEC_PHAS.
func (c *CosmicHeader) PhaseCenterDeclinationDegrees() (float64, error) {
	v, err := c.store.Get(KeyPhaseCenterDeclination)
	if err != nil {
		return 0, err
	}
	return c.sexagesimal(KeyPhaseCenterDeclination, v)
}

func (c *CosmicHeader) SetPhaseCenterDeclinationDegrees(deg float64) {
	c.store.Set(KeyPhaseCenterDeclination, DefaultSexagesimal.Format(deg))
}
