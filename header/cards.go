package header

import (
	"github.com/astrogo/fitsio"
)

// commentary cards carry no key-value pair and are not imported.
var commentary = map[string]bool{
	"":        true,
	"END":     true,
	"COMMENT": true,
	"HISTORY": true,
}

// FromCards builds a Store from FITS cards, keeping their order.
func FromCards(cards []fitsio.Card) *Store {
	s := New()
	for _, c := range cards {
		if commentary[c.Name] {
			continue
		}
		s.Set(c.Name, c.Value)
	}
	return s
}

// FromFITSHeader builds a Store from a header decoded by fitsio.
func FromFITSHeader(hdr *fitsio.Header) *Store {
	s := New()
	for _, key := range hdr.Keys() {
		if commentary[key] {
			continue
		}
		c := hdr.Get(key)
		if c == nil {
			continue
		}
		s.Set(key, c.Value)
	}
	return s
}

// Cards returns the store as FITS cards, in insertion order.
func (s *Store) Cards() []fitsio.Card {
	cards := make([]fitsio.Card, len(s.items))
	for i, it := range s.items {
		cards[i] = fitsio.Card{Name: it.Key, Value: it.Value}
	}
	return cards
}
