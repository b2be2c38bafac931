package guppiraw

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Sexagesimal converts between a float and positional text such as
// "8:20:25.12" (hours or degrees, minutes, seconds).
type Sexagesimal struct {
	Delimiter string
	Base      float64
}

// DefaultSexagesimal is colon-delimited base 60, as used by RA_STR and
// DEC_STR.
var DefaultSexagesimal = Sexagesimal{Delimiter: ":", Base: 60}

// Parse sums part[i]/Base^i.  The sign of the first part applies to the
// whole value, so "-8:30" is -8.5.
func (sx Sexagesimal) Parse(text string) (float64, error) {
	parts := strings.Split(text, sx.Delimiter)
	lead := strings.TrimSpace(parts[0])
	value, err := strconv.ParseFloat(lead, 64)
	if err != nil {
		return 0, fmt.Errorf("guppiraw: sexagesimal %q: %w", text, err)
	}
	sign := 1.0
	if strings.HasPrefix(lead, "-") {
		sign = -1
	}
	var frac float64
	factor := 1.0
	for _, p := range parts[1:] {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, fmt.Errorf("guppiraw: sexagesimal %q: %w", text, err)
		}
		factor *= sx.Base
		frac += f / factor
	}
	return value + sign*frac, nil
}

// Format writes value as integer part, whole minutes, and seconds with 16
// decimal places.  A negative value above -1 keeps its sign as "-0".
//
// Parse(Format(x)) recovers x to about 13 significant digits when
// |x| >= 1e-7 and x*Base is finite.  Smaller magnitudes lose digits to the
// fixed seconds precision, down to "0:0:0.0000000000000000".  When x*Base
// overflows the seconds field is NaN.
func (sx Sexagesimal) Format(value float64) string {
	whole := math.Trunc(value)
	lead := strconv.FormatFloat(whole, 'f', 0, 64)
	if value < 0 && whole == 0 {
		lead = "-0"
	}
	minutes := math.Abs(math.Trunc((value - whole) * sx.Base))
	scaled := value * sx.Base
	seconds := math.Abs((scaled - math.Trunc(scaled)) * sx.Base)
	return strings.Join([]string{
		lead,
		strconv.FormatFloat(minutes, 'f', 0, 64),
		strconv.FormatFloat(seconds, 'f', 16, 64),
	}, sx.Delimiter)
}

// FromSexagesimal parses string values with DefaultSexagesimal and reads
// anything else as a plain number.
func FromSexagesimal(v interface{}) (float64, error) {
	if s, ok := v.(string); ok {
		return DefaultSexagesimal.Parse(s)
	}
	return cast.ToFloat64E(v)
}

// ToSexagesimal formats numbers with DefaultSexagesimal.  Strings are
// returned unchanged.
func ToSexagesimal(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return "", err
	}
	return DefaultSexagesimal.Format(f), nil
}
