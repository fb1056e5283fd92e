package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
)

// JSONDocument is a JSON object that keeps member order across a
// parse/mutate/encode round trip. Regular map-based decoding reorders keys,
// which would make every rewrite of the engine config a spurious diff.
type JSONDocument struct {
	root *jsonNode
}

type jsonKind int

const (
	kindNull jsonKind = iota
	kindBool
	kindNumber
	kindString
	kindObject
	kindArray
)

type jsonNode struct {
	kind    jsonKind
	boolVal bool
	numVal  json.Number
	strVal  string
	elems   []*jsonNode
	members []jsonMember
}

type jsonMember struct {
	key   string
	value *jsonNode
}

func ParseJSONDocument(data []byte) (*JSONDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if root.kind != kindObject {
		return nil, errors.New("document root is not a json object")
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after json document")
	}

	return &JSONDocument{root: root}, nil
}

func parseJSONValue(dec *json.Decoder) (*jsonNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return parseJSONToken(dec, tok)
}

func parseJSONToken(dec *json.Decoder, tok json.Token) (*jsonNode, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			node := &jsonNode{kind: kindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key token: %v", keyTok)
				}

				value, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.setMember(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return node, nil
		case '[':
			node := &jsonNode{kind: kindArray}
			for dec.More() {
				value, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.elems = append(node.elems, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return node, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter: %v", t)
		}
	case string:
		return &jsonNode{kind: kindString, strVal: t}, nil
	case json.Number:
		return &jsonNode{kind: kindNumber, numVal: t}, nil
	case bool:
		return &jsonNode{kind: kindBool, boolVal: t}, nil
	case nil:
		return &jsonNode{kind: kindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token: %v", tok)
	}
}

func (n *jsonNode) member(key string) *jsonNode {
	if n == nil || n.kind != kindObject {
		return nil
	}
	for _, m := range n.members {
		if m.key == key {
			return m.value
		}
	}

	return nil
}

// setMember replaces an existing member in place, so a duplicated source key
// keeps its first position and its last value.
func (n *jsonNode) setMember(key string, value *jsonNode) {
	for i, m := range n.members {
		if m.key == key {
			n.members[i].value = value
			return
		}
	}
	n.members = append(n.members, jsonMember{key: key, value: value})
}

func (d *JSONDocument) nodeAt(path ...string) *jsonNode {
	node := d.root
	for _, key := range path {
		node = node.member(key)
		if node == nil {
			return nil
		}
	}

	return node
}

// StringAt returns the string value at path, reporting whether it exists.
func (d *JSONDocument) StringAt(path ...string) (string, bool) {
	node := d.nodeAt(path...)
	if node == nil || node.kind != kindString {
		return "", false
	}

	return node.strVal, true
}

// StringSliceAt returns the array of strings at path. Arrays holding
// non-string elements report false.
func (d *JSONDocument) StringSliceAt(path ...string) ([]string, bool) {
	node := d.nodeAt(path...)
	if node == nil || node.kind != kindArray {
		return nil, false
	}

	out := make([]string, 0, len(node.elems))
	for _, elem := range node.elems {
		if elem.kind != kindString {
			return nil, false
		}
		out = append(out, elem.strVal)
	}

	return out, true
}

// SetStringSlice replaces the value at path with an array of strings. An
// existing member keeps its position; missing members (and missing
// intermediate objects) are appended at the end of their parent object.
func (d *JSONDocument) SetStringSlice(values []string, path ...string) error {
	if len(path) == 0 {
		return errors.New("empty path")
	}

	node := d.root
	for _, key := range path[:len(path)-1] {
		next := node.member(key)
		if next == nil {
			next = &jsonNode{kind: kindObject}
			node.members = append(node.members, jsonMember{key: key, value: next})
		}
		if next.kind != kindObject {
			return fmt.Errorf("path element %q is not a json object", key)
		}
		node = next
	}

	arr := &jsonNode{kind: kindArray, elems: make([]*jsonNode, 0, len(values))}
	for _, v := range values {
		arr.elems = append(arr.elems, &jsonNode{kind: kindString, strVal: v})
	}

	node.setMember(path[len(path)-1], arr)

	return nil
}

// Encode renders the document with 4-space indentation, ASCII-safe string
// escaping, and a trailing newline.
func (d *JSONDocument) Encode() []byte {
	var buf bytes.Buffer
	encodeJSONNode(&buf, d.root, 0)
	buf.WriteByte('\n')

	return buf.Bytes()
}

const jsonIndent = "    "

func encodeJSONNode(buf *bytes.Buffer, n *jsonNode, depth int) {
	switch n.kind {
	case kindObject:
		if len(n.members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, m := range n.members {
			writeJSONIndent(buf, depth+1)
			encodeJSONString(buf, m.key)
			buf.WriteString(": ")
			encodeJSONNode(buf, m.value, depth+1)
			if i < len(n.members)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeJSONIndent(buf, depth)
		buf.WriteByte('}')
	case kindArray:
		if len(n.elems) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, elem := range n.elems {
			writeJSONIndent(buf, depth+1)
			encodeJSONNode(buf, elem, depth+1)
			if i < len(n.elems)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeJSONIndent(buf, depth)
		buf.WriteByte(']')
	case kindString:
		encodeJSONString(buf, n.strVal)
	case kindNumber:
		buf.WriteString(n.numVal.String())
	case kindBool:
		if n.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case kindNull:
		buf.WriteString("null")
	}
}

func writeJSONIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(jsonIndent)
	}
}

func encodeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || r >= 0x80:
				if r > 0xffff {
					hi, lo := utf16.EncodeRune(r)
					fmt.Fprintf(buf, `\u%04x\u%04x`, hi, lo)
				} else {
					fmt.Fprintf(buf, `\u%04x`, r)
				}
			default:
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
