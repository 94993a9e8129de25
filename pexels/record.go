package pexels

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// record gives typed, per-field access to one raw JSON object
type record struct {
	kind   string
	prefix string
	fields map[string]json.RawMessage
	err    error
}

func newRecord(kind string, raw json.RawMessage) record {
	rec := record{kind: kind}
	if err := json.Unmarshal(raw, &rec.fields); err != nil {
		rec.err = &MalformedFieldError{Record: kind, Field: "(record)", Err: err}
	} else if rec.fields == nil {
		rec.err = &MalformedFieldError{Record: kind, Field: "(record)", Err: errors.New("record is null")}
	}
	return rec
}

// decode unmarshals field into dst
func (r record) decode(field string, dst any) error {
	if r.err != nil {
		return r.err
	}
	raw, ok := r.fields[field]
	if !ok || isNull(raw) {
		return &MissingFieldError{Record: r.kind, Field: r.prefix + field}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &MalformedFieldError{Record: r.kind, Field: r.prefix + field, Err: err}
	}
	return nil
}

func (r record) str(field string) (string, error) {
	var s string
	if err := r.decode(field, &s); err != nil {
		return "", err
	}
	return s, nil
}

func (r record) integer(field string) (int, error) {
	var n int
	if err := r.decode(field, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// nested returns the object stored under field as its own record
func (r record) nested(field string) record {
	var raw json.RawMessage
	if err := r.decode(field, &raw); err != nil {
		return record{kind: r.kind, err: err}
	}

	child := newRecord(r.kind, raw)
	child.prefix = r.prefix + field + "."
	if child.err != nil {
		child.err = &MalformedFieldError{Record: r.kind, Field: r.prefix + field, Err: errors.Unwrap(child.err)}
	}
	return child
}

// describeFromURL derives a description from a canonical page URL such as
// https://www.pexels.com/photo/green-leaves-1072179/: the last path segment
// without its "-<id>" suffix, dashes turned into spaces, lower-cased.
func describeFromURL(pageURL string, id int) string {
	path := pageURL
	if u, err := url.Parse(pageURL); err == nil {
		path = u.Path
	}

	path = strings.TrimRight(path, "/")
	segment := path[strings.LastIndex(path, "/")+1:]
	segment = strings.TrimSuffix(segment, "-"+strconv.Itoa(id))

	return strings.ToLower(strings.ReplaceAll(segment, "-", " "))
}
