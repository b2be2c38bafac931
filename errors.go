package guppiraw

import (
	"fmt"

	"github.com/jbrzusto/guppiraw/header"
)

// MissingKeyError reports that a required key is absent.
type MissingKeyError = header.MissingKeyError

// ValueTypeError reports a value that can't be read as the needed type.
type ValueTypeError = header.ValueTypeError

// NonFactorDivisionError reports an integer ratio that should be exact
// but isn't, which means the header is inconsistent.  A zero divisor is
// reported the same way.
type NonFactorDivisionError struct {
	Dividend int
	Divisor  int
}

func (e *NonFactorDivisionError) Error() string {
	return fmt.Sprintf("guppiraw: cannot cleanly divide %d by non-factor %d", e.Dividend, e.Divisor)
}

// UnknownEnumValueError reports a value outside a key's vocabulary.
type UnknownEnumValueError struct {
	Key   string
	Value interface{}
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("guppiraw: key %q: unrecognized value %#v", e.Key, e.Value)
}

// factorDivision returns dividend/divisor when divisor divides it exactly.
func factorDivision(dividend, divisor int) (int, error) {
	if divisor == 0 || dividend%divisor != 0 {
		return 0, &NonFactorDivisionError{Dividend: dividend, Divisor: divisor}
	}
	return dividend / divisor, nil
}
