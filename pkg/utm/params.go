package utm

import "strings"

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an insertion-ordered parameter set.
type Params struct {
	list []Param
}

// NewParams creates an empty parameter set with room for n entries.
func NewParams(n int) *Params {
	return &Params{list: make([]Param, 0, n)}
}

// Set appends key or, when it is already present, replaces its value in place.
func (p *Params) Set(key, value string) *Params {
	for i := range p.list {
		if p.list[i].Key == key {
			p.list[i].Value = value
			return p
		}
	}
	p.list = append(p.list, Param{Key: key, Value: value})
	return p
}

// Get returns the value for key.
func (p *Params) Get(key string) (string, bool) {
	for _, kv := range p.list {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.list)
}

// List returns a copy of the parameters in insertion order.
func (p *Params) List() []Param {
	out := make([]Param, len(p.list))
	copy(out, p.list)
	return out
}

// Encode renders "?k1=v1&k2=v2". Keys are written verbatim, values are
// percent-encoded with EncodeURIComponent.
func (p *Params) Encode() string {
	var b strings.Builder
	b.WriteByte('?')
	for i, kv := range p.list {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(EncodeURIComponent(kv.Value))
	}
	return b.String()
}
