// Package method defines the HTTP verbs a user can pick in the exercise's verb
// selector.
package method

import (
	"fmt"
	"strings"
)

// Method is an HTTP verb name such as "GET".
type Method string

// Verbs offered by the selector, in display order.
const (
	Get    Method = "GET"
	Post   Method = "POST"
	Put    Method = "PUT"
	Delete Method = "DELETE"
	Patch  Method = "PATCH"
)

// All returns the selectable verbs in display order.
func All() []Method {
	return []Method{Get, Post, Put, Delete, Patch}
}

// IsValid reports whether m is one of the selectable verbs.
func (m Method) IsValid() bool {
	for _, v := range All() {
		if m == v {
			return true
		}
	}
	return false
}

// Parse normalizes raw into a [Method]. Case and surrounding space are ignored.
func Parse(raw string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown HTTP method: %q", raw)
	}
	return m, nil
}

// ParseList parses a comma separated list such as "POST,GET,PATCH,GET".
// Empty entries are kept as the empty Method so positions are preserved.
func ParseList(raw string) ([]Method, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]Method, len(parts))
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		m, err := Parse(p)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// Next returns the verb after m in display order, wrapping around.
// The empty Method cycles to the first verb.
func (m Method) Next() Method {
	all := All()
	for i, v := range all {
		if v == m {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev returns the verb before m in display order, wrapping around.
func (m Method) Prev() Method {
	all := All()
	for i, v := range all {
		if v == m {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[len(all)-1]
}
