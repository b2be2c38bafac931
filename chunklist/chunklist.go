// Package chunklist spreads a list of short strings across numbered
// header keys.
//
// A header value holds at most 68 characters of list, so a long list
// (e.g. antenna names) is split into comma-joined chunks stored under
// <prefix>00, <prefix>01, ...  The prefix is at most 6 characters so that
// prefix and 2-digit index fit an 8-character key.
package chunklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jbrzusto/guppiraw/header"
)

const (
	MaxChunkLength  = 68  // characters of joined list per chunk value
	MaxPrefixLength = 6   // header.KeyLength less the 2-digit index
	Separator       = "," // between list elements within a chunk
)

var ErrPrefixTooLong = errors.New("chunklist: key prefix longer than 6 characters")

// Getter is the read side of a header.Store.
type Getter interface {
	Get(key string) (interface{}, error)
}

// Key returns the header key of chunk i.
func Key(prefix string, i int) string {
	return fmt.Sprintf("%s%02d", prefix, i)
}

// Encode splits values into chunks, returned in key order.  An element is
// never split across chunks; one longer than MaxChunkLength gets a chunk
// to itself.
func Encode(prefix string, values []string) ([]header.Item, error) {
	if len(prefix) > MaxPrefixLength {
		return nil, ErrPrefixTooLong
	}
	if len(values) == 0 {
		return nil, nil
	}
	var items []header.Item
	current := values[0]
	for _, v := range values[1:] {
		if len(current)+len(Separator)+len(v) > MaxChunkLength {
			items = append(items, header.Item{Key: Key(prefix, len(items)), Value: current})
			current = v
			continue
		}
		current += Separator + v
	}
	items = append(items, header.Item{Key: Key(prefix, len(items)), Value: current})
	return items, nil
}

// Decode reads chunks <prefix>00, <prefix>01, ... until it has at least n
// elements and returns the first n.  A missing chunk returns the getter's
// error.
func Decode(g Getter, prefix string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	list := make([]string, 0, n)
	for i := 0; len(list) < n; i++ {
		v, err := g.Get(Key(prefix, i))
		if err != nil {
			return nil, err
		}
		chunk, ok := v.(string)
		if !ok {
			chunk = fmt.Sprint(v)
		}
		list = append(list, strings.Split(chunk, Separator)...)
	}
	return list[:n], nil
}

// Store encodes values and sets each chunk in s.  Chunks left over from a
// longer list are not removed; Decode never reads past the chunks it
// needs.
func Store(s *header.Store, prefix string, values []string) error {
	items, err := Encode(prefix, values)
	if err != nil {
		return err
	}
	for _, it := range items {
		s.Set(it.Key, it.Value)
	}
	return nil
}
