package chunklist

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jbrzusto/guppiraw/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(n, width int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("ant%0*d", width-3, i)
	}
	return out
}

func TestEncodeSplitsAt68(t *testing.T) {
	list := names(3, 23)
	items, err := Encode("ANTNMS", list)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ANTNMS00", items[0].Key)
	assert.Equal(t, list[0]+","+list[1], items[0].Value)
	assert.Equal(t, "ANTNMS01", items[1].Key)
	assert.Equal(t, list[2], items[1].Value)

	s := header.New(items...)
	got, err := Decode(s, "ANTNMS", len(list))
	require.NoError(t, err)
	if diff := cmp.Diff(list, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeFillsChunkExactly(t *testing.T) {
	// 4 x 16 chars + 3 separators = 67; a fifth element overflows.
	list := names(5, 16)
	items, err := Encode("ANTFLG", list)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Len(t, items[0].Value, 67)
}

func TestRoundTripMany(t *testing.T) {
	for _, n := range []int{1, 2, 7, 28, 64} {
		list := names(n, 5)
		items, err := Encode("ANTNMS", list)
		require.NoError(t, err)
		for _, it := range items {
			assert.LessOrEqual(t, len(it.Value.(string)), MaxChunkLength)
		}
		got, err := Decode(header.New(items...), "ANTNMS", n)
		require.NoError(t, err)
		if diff := cmp.Diff(list, got); diff != "" {
			t.Errorf("n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestDecodeTruncates(t *testing.T) {
	s := header.New(header.Item{Key: "ANTNMS00", Value: "1a,1b,1c,1d"})
	got, err := Decode(s, "ANTNMS", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1a", "1b"}, got)
}

func TestDecodeMissingChunk(t *testing.T) {
	s := header.New(header.Item{Key: "ANTNMS00", Value: "1a,1b"})
	_, err := Decode(s, "ANTNMS", 3)
	var mk *header.MissingKeyError
	require.True(t, errors.As(err, &mk))
	assert.Equal(t, "ANTNMS01", mk.Key)
}

func TestDecodeZero(t *testing.T) {
	got, err := Decode(header.New(), "ANTNMS", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeEmptyAndLongPrefix(t *testing.T) {
	items, err := Encode("ANTNMS", nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = Encode("ANTNAMES", []string{"a"})
	assert.ErrorIs(t, err, ErrPrefixTooLong)
}

func TestEncodeOversizedElement(t *testing.T) {
	long := strings.Repeat("x", 80)
	items, err := Encode("AX", []string{"a", long, "b"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, long, items[1].Value)
}

func TestStoreOverwritesChunks(t *testing.T) {
	s := header.New(header.Item{Key: "NANTS", Value: 2})
	require.NoError(t, Store(s, "ANTNMS", []string{"1c", "2h"}))
	assert.Equal(t, []string{"NANTS", "ANTNMS00"}, s.Keys())

	require.NoError(t, Store(s, "ANTNMS", []string{"3e", "4j"}))
	got, err := Decode(s, "ANTNMS", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3e", "4j"}, got)
}
