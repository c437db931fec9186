// Package deps extracts the "$ref" dependencies declared by schema documents.
package deps

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"slices"

	"github.com/tidwall/jsonc"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/zerr"
)

// RefKey is the object key whose string values name a dependency.
const RefKey = "$ref"

// Extract returns every string value stored under a "$ref" key at any depth
// of the JSON document, in document order and without duplicates.
//
// Comments and trailing commas are tolerated. Referenced documents are not
// followed.
func Extract(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(content)))
	dec.UseNumber()

	x := &extractor{dec: dec}
	tok, err := dec.Token()
	if err != nil {
		return nil, wrap(err)
	}
	if err := x.value(tok, false); err != nil {
		return nil, wrap(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, wrap(err)
	}
	return x.refs, nil
}

type extractor struct {
	dec  *json.Decoder
	refs []string
}

// value consumes the value starting at tok. ref is set when the value sits under a "$ref" key.
func (x *extractor) value(tok json.Token, ref bool) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return x.object()
		case '[':
			return x.array()
		default:
			return errors.New("unexpected delimiter " + v.String())
		}
	case string:
		if ref && !slices.Contains(x.refs, v) {
			x.refs = append(x.refs, v)
		}
	}
	return nil
}

func (x *extractor) object() error {
	for x.dec.More() {
		keyTok, err := x.dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("object key is not a string")
		}
		tok, err := x.dec.Token()
		if err != nil {
			return err
		}
		if err := x.value(tok, key == RefKey); err != nil {
			return err
		}
	}
	_, err := x.dec.Token()
	return err
}

func (x *extractor) array() error {
	for x.dec.More() {
		tok, err := x.dec.Token()
		if err != nil {
			return err
		}
		if err := x.value(tok, false); err != nil {
			return err
		}
	}
	_, err := x.dec.Token()
	return err
}

func wrap(cause error) error {
	if errors.Is(cause, io.EOF) {
		cause = io.ErrUnexpectedEOF
	}
	return zerr.Wrap(domain.ErrDependencyExtraction, cause.Error())
}
