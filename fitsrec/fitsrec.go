// Package fitsrec writes a header as FITS-style fixed-width records.
//
// Each key-value pair becomes one 80-character record:
//
//	KEYWORD_=VALUE...
//
// the key left-justified in 8 characters, a literal '=', then a
// 71-character value field.  String values are single-quoted.  The
// records are concatenated without separators and closed by an END
// record.  Records are printable ASCII; any other character is written as
// '?'.  Reading records back is left to the raw-file reader.
package fitsrec

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jbrzusto/guppiraw/header"
)

const (
	RecordLength    = 80                           // bytes per record
	KeyLength       = header.KeyLength             // key field width
	ValueLength     = RecordLength - KeyLength - 1 // value field width, after '='
	MaxStringLength = ValueLength - 2              // string content before quoting
)

// EndRecord closes every header.
var EndRecord = "END" + strings.Repeat(" ", RecordLength-3)

// Record formats a single key-value record.
func Record(key string, value interface{}) string {
	return pad(ascii(key), KeyLength) + "=" + pad(FormatValue(value), ValueLength)
}

// ascii replaces everything outside printable ASCII with '?', so that
// each character is one byte.
func ascii(s string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || r > '~' {
			return '?'
		}
		return r
	}, s)
}

// FormatValue returns the text of a record's value field before padding.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		v = ascii(v)
		if len(v) > MaxStringLength {
			v = v[:MaxStringLength]
		}
		return "'" + v + "'"
	case bool:
		if v {
			return "T"
		}
		return "F"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	}
	return fmt.Sprint(value)
}

// formatFloat writes the shortest text that reads back as f, keeping a
// decimal point on integral values so readers don't take them for ints.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// pad truncates or space-pads s to exactly n bytes.
func pad(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

// Encode returns the records for items followed by the END record.
func Encode(items []header.Item) string {
	var b strings.Builder
	b.Grow((len(items) + 1) * RecordLength)
	for _, it := range items {
		b.WriteString(Record(it.Key, it.Value))
	}
	b.WriteString(EndRecord)
	return b.String()
}

// Write writes Encode(items) to w.
func Write(w io.Writer, items []header.Item) (int64, error) {
	n, err := io.WriteString(w, Encode(items))
	return int64(n), err
}
