package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/jbrzusto/guppiraw/header"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// readHeaderFile loads a header from a FITS file (.fits, .fit, .fts) or
// from a YAML mapping of keys to scalars, whose order is kept.
func readHeaderFile(path string, logger *zap.Logger) (*header.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".fits", ".fit", ".fts":
		return readFITS(f)
	}
	return readYAML(f, logger)
}

// readFITS imports the primary HDU header of a FITS file.
func readFITS(r io.Reader) (*header.Store, error) {
	fit, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("guppihdr: open fits: %w", err)
	}
	defer fit.Close()
	return header.FromFITSHeader(fit.HDU(0).Header()), nil
}

// readYAML reads a single YAML document mapping header keys to scalars.
// yaml.Node is used rather than a map so key order and case survive.
func readYAML(r io.Reader, logger *zap.Logger) (*header.Store, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return header.New(), nil
		}
		return nil, fmt.Errorf("guppihdr: parse yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("guppihdr: line %d: header must be a mapping of keys to values", root.Line)
	}
	s := header.New()
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		value, err := scalarValue(v)
		if err != nil {
			return nil, fmt.Errorf("guppihdr: key %q: %w", k.Value, err)
		}
		if len(k.Value) > header.KeyLength {
			logger.Warn("key longer than 8 characters will be truncated in FITS records",
				zap.String("key", k.Value), zap.Int("line", k.Line))
		}
		s.Set(k.Value, value)
	}
	return s, nil
}

// scalarValue decodes a YAML scalar as int, float64, bool or string.
func scalarValue(n *yaml.Node) (interface{}, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: value is not a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!int":
		var i int
		err := n.Decode(&i)
		return i, err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, err
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err
	case "!!null":
		return nil, fmt.Errorf("line %d: value is null", n.Line)
	}
	return n.Value, nil
}
