package curl

import "strings"

// HeaderField is one header of a Request.
type HeaderField struct {
	Key   string
	Value string
}

// Headers is an ordered, repeatable list of request headers. Lookups are
// case-insensitive; original case is kept.
type Headers []HeaderField

// Get returns the first value for key, or "" if absent.
func (h Headers) Get(key string) string {
	for _, f := range h {
		if strings.EqualFold(f.Key, key) {
			return f.Value
		}
	}
	return ""
}

// Has reports whether key is present.
func (h Headers) Has(key string) bool {
	for _, f := range h {
		if strings.EqualFold(f.Key, key) {
			return true
		}
	}
	return false
}

// Values returns every value for key in order.
func (h Headers) Values(key string) []string {
	var vals []string
	for _, f := range h {
		if strings.EqualFold(f.Key, key) {
			vals = append(vals, f.Value)
		}
	}
	return vals
}

// Set replaces the first header with key and drops later ones, or appends.
func (h *Headers) Set(key, value string) {
	for i, f := range *h {
		if !strings.EqualFold(f.Key, key) {
			continue
		}
		(*h)[i].Value = value
		rest := (*h)[i+1:]
		j := 0
		for _, g := range rest {
			if !strings.EqualFold(g.Key, key) {
				rest[j] = g
				j++
			}
		}
		*h = (*h)[:i+1+j]
		return
	}
	*h = append(*h, HeaderField{Key: key, Value: value})
}

// Add appends a header without replacing existing ones.
func (h *Headers) Add(key, value string) {
	*h = append(*h, HeaderField{Key: key, Value: value})
}

// Del removes every header with key.
func (h *Headers) Del(key string) {
	j := 0
	for _, f := range *h {
		if !strings.EqualFold(f.Key, key) {
			(*h)[j] = f
			j++
		}
	}
	*h = (*h)[:j]
}

// Clone returns a copy of the headers.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	clone := make(Headers, len(h))
	copy(clone, h)
	return clone
}
