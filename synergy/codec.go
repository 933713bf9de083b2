package synergy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	attrPrefix = "_"
	textKey    = "#text"
	paramsRoot = "Params"
)

// Paths that always decode to []any, whatever the wire cardinality.
var alwaysArray = pathSet(
	"SynergyMailDataXML.FolderListViewDataXML.FolderListViewDataXML",
	"SynergyMailDataXML.FolderListViewDataXML.FolderListViewDataXML.MessageListings.MessageXML",
	"SynergyMailDataXML.FolderListViewDataXML.FolderListViewDataXML.MessageListings.MessageXML.AttachmentDatas.AttachmentData",
	"SynergyMailDataXML.FolderListViewDataXML.FolderListViewDataXML.MessageListings.MessageXML.To.RecipientXML",
	"Gradebook.Courses.Course",
	"Gradebook.Courses.Course.Marks.Mark",
	"Gradebook.Courses.Course.Marks.Mark.Assignments.Assignment",
	"Gradebook.Courses.Course.Marks.Mark.GradeCalculationSummary.AssignmentGradeCalc",
	"Gradebook.ReportingPeriods.ReportPeriod",
	"Attendance.Absences.Absence",
)

func pathSet(paths ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// arrayParents maps a parent path to the always-array child names it must
// carry, so an empty listing still yields [].
var arrayParents = map[string][]string{}

func init() {
	for path := range alwaysArray {
		i := strings.LastIndexByte(path, '.')
		arrayParents[path[:i]] = append(arrayParents[path[:i]], path[i+1:])
	}
}

// Result is a decoded XML tree. Elements become nested maps, attributes
// are keys prefixed with "_", repeated elements are []any and leaf
// elements are strings.
type Result map[string]any

// Map returns the child element under key, or nil.
func (r Result) Map(key string) Result {
	m, _ := r[key].(map[string]any)
	return m
}

// List returns the children under key as a slice. A lone element is
// wrapped; strings and missing keys give nil.
func (r Result) List(key string) []Result {
	switch v := r[key].(type) {
	case []any:
		out := make([]Result, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []Result{v}
	}
	return nil
}

// String returns a leaf value or attribute, or the text of an element
// that also carries attributes.
func (r Result) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v[textKey].(string)
		return s
	}
	return ""
}

// Lookup reports whether key holds a leaf string.
func (r Result) Lookup(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Encode renders params as a <Params> document. Keys starting with "_"
// become attributes, "#text" becomes text content, maps nest and slices
// repeat the element. Keys are written in sorted order.
func Encode(params map[string]any) (string, error) {
	var b strings.Builder
	if err := encodeElement(&b, paramsRoot, params); err != nil {
		return "", err
	}
	return b.String(), nil
}

func encodeElement(b *strings.Builder, name string, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("<" + name)
		for _, k := range keys {
			if !strings.HasPrefix(k, attrPrefix) {
				continue
			}
			b.WriteString(" " + strings.TrimPrefix(k, attrPrefix) + `="`)
			if err := xml.EscapeText(b, []byte(scalar(val[k]))); err != nil {
				return err
			}
			b.WriteString(`"`)
		}
		b.WriteString(">")
		for _, k := range keys {
			switch {
			case k == textKey:
				if err := xml.EscapeText(b, []byte(scalar(val[k]))); err != nil {
					return err
				}
			case strings.HasPrefix(k, attrPrefix):
			default:
				if err := encodeElement(b, k, val[k]); err != nil {
					return err
				}
			}
		}
		b.WriteString("</" + name + ">")
	case []any:
		for _, item := range val {
			if err := encodeElement(b, name, item); err != nil {
				return err
			}
		}
	case []map[string]any:
		for _, item := range val {
			if err := encodeElement(b, name, item); err != nil {
				return err
			}
		}
	default:
		b.WriteString("<" + name + ">")
		if err := xml.EscapeText(b, []byte(scalar(val))); err != nil {
			return err
		}
		b.WriteString("</" + name + ">")
	}
	return nil
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

type frame struct {
	name string
	path string
	node map[string]any
	text strings.Builder
}

// Decode parses an XML document into a Result. Text is trimmed, namespace
// prefixes are dropped and the always-array paths are materialized as
// slices, empty ones included.
func Decode(data string) (Result, error) {
	dec := xml.NewDecoder(strings.NewReader(data))
	dec.CharsetReader = charsetReader

	root := &frame{node: map[string]any{}}
	stack := []*frame{root}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			path := t.Name.Local
			if parent.path != "" {
				path = parent.path + "." + t.Name.Local
			}
			f := &frame{name: t.Name.Local, path: path, node: map[string]any{}}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				f.node[attrPrefix+a.Name.Local] = a.Value
			}
			stack = append(stack, f)
		case xml.CharData:
			stack[len(stack)-1].text.Write(t)
		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			appendChild(stack[len(stack)-1].node, f.name, f.path, f.value())
		}
	}

	if len(root.node) == 0 {
		return nil, fmt.Errorf("%w: empty XML document", ErrProtocol)
	}
	return root.node, nil
}

func (f *frame) value() any {
	text := strings.TrimSpace(f.text.String())
	children, isParent := arrayParents[f.path]
	if len(f.node) == 0 && !isParent {
		return text
	}
	if text != "" {
		f.node[textKey] = text
	}
	for _, name := range children {
		if _, ok := f.node[name]; !ok {
			f.node[name] = []any{}
		}
	}
	return f.node
}

func appendChild(node map[string]any, name, path string, v any) {
	if _, ok := alwaysArray[path]; ok {
		list, _ := node[name].([]any)
		node[name] = append(list, v)
		return
	}
	switch existing := node[name].(type) {
	case nil:
		node[name] = v
	case []any:
		node[name] = append(existing, v)
	default:
		node[name] = []any{existing, v}
	}
}

// Decode always reads Go strings, which are UTF-8 already. The inner
// result documents still declare utf-16 because the server serializes
// them through a .NET string writer, so that label is ignored.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
