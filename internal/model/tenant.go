package model

import (
	"sort"
	"strings"
)

// DefaultTenants is the tenant list used when configuration does not provide one.
var DefaultTenants = []string{"aadvanto", "movido"}

// TenantSet is an immutable allowlist of known tenant names.
type TenantSet struct {
	names map[string]struct{}
}

// NewTenantSet builds a set from names. Blank entries are skipped; matching is exact.
func NewTenantSet(names ...string) TenantSet {
	s := TenantSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s.names[n] = struct{}{}
	}
	return s
}

func (s TenantSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s TenantSet) Len() int { return len(s.names) }

// Names returns the tenants in sorted order.
func (s TenantSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
