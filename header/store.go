// Package header holds the ordered key-value store behind a GUPPI RAW
// header.
//
// A GUPPI RAW header is a sequence of FITS-style cards: keys of at most 8
// characters mapped to scalar values (int, float64, string or bool).  The
// order in which keys are inserted is the order in which they are
// serialized, so the Store keeps it.  Parsing the 80-byte records of a raw
// file into a Store is left to the caller; FromFITSHeader covers headers
// already decoded by github.com/astrogo/fitsio.
//
// A Store does no locking.  Callers sharing one between goroutines must
// serialize access themselves.
package header

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// KeyLength is the maximum length of a key in a serialized header.
const KeyLength = 8

// Item is a single key-value pair of a header.
type Item struct {
	Key   string
	Value interface{}
}

// MissingKeyError reports that a required key is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("header: missing required key %q", e.Key)
}

// ValueTypeError reports a value that is present but can't be read as
// the type a property needs.
type ValueTypeError struct {
	Key   string
	Value interface{}
	Err   error
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("header: key %q: value %#v: %v", e.Key, e.Value, e.Err)
}

func (e *ValueTypeError) Unwrap() error { return e.Err }

// Store is an insertion-ordered mapping of header keys to scalar values.
type Store struct {
	items []Item
	index map[string]int // key -> position in items
}

// New returns a Store holding items in the order given.  A repeated key
// overwrites the earlier value in place.
func New(items ...Item) *Store {
	s := &Store{index: make(map[string]int, len(items))}
	for _, it := range items {
		s.Set(it.Key, it.Value)
	}
	return s
}

// normalize folds the integer and float kinds onto int and float64 so that
// serialization and type switches only see the four header scalar types.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt(x)
	case float32:
		return float64(x)
	}
	return v
}

// Set stores value under key.  New keys go at the end; existing keys keep
// their position.
func (s *Store) Set(key string, value interface{}) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	value = normalize(value)
	if i, ok := s.index[key]; ok {
		s.items[i].Value = value
		return
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, Item{Key: key, Value: value})
}

// Lookup returns the value for key and whether it was present.
func (s *Store) Lookup(key string) (interface{}, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.items[i].Value, true
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Get returns the value for a required key, or a *MissingKeyError.
func (s *Store) Get(key string) (interface{}, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	return v, nil
}

// GetOr returns the value for key, or def when it is absent.
func (s *Store) GetOr(key string, def interface{}) interface{} {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Len returns the number of keys.
func (s *Store) Len() int { return len(s.items) }

// Keys returns the keys in insertion order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.items))
	for i, it := range s.items {
		keys[i] = it.Key
	}
	return keys
}

// Items returns a copy of the key-value pairs in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Int returns the required key as an int.
func (s *Store) Int(key string) (int, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return toInt(key, v)
}

// IntOr returns key as an int, or def when it is absent.
func (s *Store) IntOr(key string, def int) (int, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return def, nil
	}
	return toInt(key, v)
}

// Float returns the required key as a float64.
func (s *Store) Float(key string) (float64, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return toFloat(key, v)
}

// FloatOr returns key as a float64, or def when it is absent.
func (s *Store) FloatOr(key string, def float64) (float64, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return def, nil
	}
	return toFloat(key, v)
}

// String returns the required key as a string.
func (s *Store) String(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	return toString(key, v)
}

// StringOr returns key as a string, or def when it is absent.
func (s *Store) StringOr(key string, def string) (string, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return def, nil
	}
	return toString(key, v)
}

// Bool returns the required key as a bool.  Integers are true when
// nonzero.
func (s *Store) Bool(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return toBool(key, v)
}

// BoolOr returns key as a bool, or def when it is absent.
func (s *Store) BoolOr(key string, def bool) (bool, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return def, nil
	}
	return toBool(key, v)
}

// toInt refuses floats with a fractional part, which cast would truncate.
func toInt(key string, v interface{}) (int, error) {
	if f, ok := v.(float64); ok && f != math.Trunc(f) {
		return 0, &ValueTypeError{Key: key, Value: v, Err: fmt.Errorf("%v is not a whole number", f)}
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, &ValueTypeError{Key: key, Value: v, Err: err}
	}
	return n, nil
}

func toFloat(key string, v interface{}) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &ValueTypeError{Key: key, Value: v, Err: err}
	}
	return f, nil
}

func toString(key string, v interface{}) (string, error) {
	str, err := cast.ToStringE(v)
	if err != nil {
		return "", &ValueTypeError{Key: key, Value: v, Err: err}
	}
	return str, nil
}

func toBool(key string, v interface{}) (bool, error) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, &ValueTypeError{Key: key, Value: v, Err: err}
	}
	return b, nil
}
