package markup

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// defaultPolicy is the policy used by Sanitized values without their own.
var defaultPolicy = sync.OnceValue(bluemonday.UGCPolicy)

// Sanitized is untrusted HTML that is cleaned by a bluemonday policy before
// being written unescaped.
type Sanitized struct {
	Value  string
	Policy *bluemonday.Policy
}

// Sanitize wraps value for sanitization with the default user-generated
// content policy.
func Sanitize(value string) Sanitized {
	return Sanitized{Value: value}
}

// WithPolicy returns a copy of s that is cleaned by p.
func (s Sanitized) WithPolicy(p *bluemonday.Policy) Sanitized {
	s.Policy = p
	return s
}

// Format implements Content.
func (s Sanitized) Format(f *Formatter) error {
	p := s.Policy
	if p == nil {
		p = defaultPolicy()
	}
	f.WriteRaw(p.Sanitize(s.Value))
	return nil
}
