package cromwell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Output is one named workflow output in the order Cromwell reported it.
type Output struct {
	Name  string
	Value OutputValue
}

type valueKind int

const (
	valueString valueKind = iota
	valueList
	valueOther
)

// OutputValue is the raw value of a workflow output: a single file path, a
// list of paths, or a list containing nested lists of paths (Cromwell emits
// the nested form for scattered tasks). Values that are not paths at all
// (numbers, booleans, null) decode as an "other" value that flattens to
// nothing.
type OutputValue struct {
	kind valueKind
	str  string
	list []OutputValue
}

// UnmarshalJSON decodes the heterogeneous output shape into its variant.
func (v *OutputValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*v = OutputValue{kind: valueOther}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = OutputValue{kind: valueString, str: s}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		list := make([]OutputValue, len(items))
		for i, item := range items {
			if err := json.Unmarshal(item, &list[i]); err != nil {
				return fmt.Errorf("output element %d: %w", i, err)
			}
		}
		*v = OutputValue{kind: valueList, list: list}
		return nil
	}

	*v = OutputValue{kind: valueOther}
	return nil
}

// SingleValue builds an OutputValue holding one file path.
func SingleValue(path string) OutputValue {
	return OutputValue{kind: valueString, str: path}
}

// ManyValue builds an OutputValue holding a flat list of file paths.
func ManyValue(paths ...string) OutputValue {
	list := make([]OutputValue, len(paths))
	for i, p := range paths {
		list[i] = SingleValue(p)
	}
	return OutputValue{kind: valueList, list: list}
}

// NestedValue builds an OutputValue whose elements are the given values.
func NestedValue(values ...OutputValue) OutputValue {
	return OutputValue{kind: valueList, list: values}
}

// Flatten normalizes the value to an ordered flat list of file paths. A
// single path becomes a one-element list; nested lists are flattened exactly
// one level, concatenating their elements in order; non-path values yield
// nothing.
func (v OutputValue) Flatten() []string {
	switch v.kind {
	case valueString:
		return []string{v.str}
	case valueList:
		var paths []string
		for _, item := range v.list {
			switch item.kind {
			case valueString:
				paths = append(paths, item.str)
			case valueList:
				for _, inner := range item.list {
					if inner.kind == valueString {
						paths = append(paths, inner.str)
					}
				}
			}
		}
		return paths
	}
	return nil
}

// decodeOutputs parses the outputs endpoint response, preserving the order
// in which output names appear in the JSON object. encoding/json maps lose
// that order, so the outputs object is walked token by token.
func decodeOutputs(r io.Reader) ([]Output, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var outputs []Output
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in response", tok)
		}

		if key != "outputs" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, ok := nameTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected output name token %v", nameTok)
			}
			var value OutputValue
			if err := dec.Decode(&value); err != nil {
				return nil, fmt.Errorf("output %q: %w", name, err)
			}
			outputs = append(outputs, Output{Name: name, Value: value})
		}
		if _, err := dec.Token(); err != nil { // closing }
			return nil, err
		}
	}

	return outputs, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
