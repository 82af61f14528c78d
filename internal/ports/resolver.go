// Package ports turns user-facing port tokens into physical port
// assignments and auto-allocates ports for networks that did not pin any.
//
// A token is either a raw physical id ("2", "eth1") or a logical "lan<N>"
// name indexing 1-based into whatever ports the hardware actually has. A
// ":t" suffix requests tagged membership. The same grammar covers both
// bridge paradigms: the caller passes DSA interface names or stringified
// switch port numbers, the resolver does not care which.
package ports

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// tagSuffix marks a token as requesting tagged VLAN membership.
const tagSuffix = ":t"

// Assignment is one resolved port membership.
type Assignment struct {
	Port   string
	Tagged bool
}

// Resolve maps tokens onto the available physical port list. Unresolvable
// tokens (bad syntax, out-of-range index) are dropped with a warning, never
// an error: one typo should not take down the rest of the plan. Output
// preserves token order and is not deduplicated.
//
// Resolution is pure and idempotent; strategies re-resolve on every call.
func Resolve(tokens []string, available []string, logger *zap.Logger) []Assignment {
	assignments := make([]Assignment, 0, len(tokens))

	for _, token := range tokens {
		base := token
		tagged := false
		if strings.HasSuffix(base, tagSuffix) {
			tagged = true
			base = strings.TrimSuffix(base, tagSuffix)
		}

		port, ok := match(base, available)
		if !ok {
			logger.Warn("dropping unresolvable port token",
				zap.String("token", token),
				zap.Strings("available", available),
			)
			continue
		}
		assignments = append(assignments, Assignment{Port: port, Tagged: tagged})
	}

	return assignments
}

// match finds the physical port behind a token base: first an exact literal
// match (raw switch port numbers, DSA interface names), then the logical
// "lan<N>" form.
func match(base string, available []string) (string, bool) {
	for _, p := range available {
		if p == base {
			return p, true
		}
	}

	if idx, ok := logicalIndex(base); ok {
		if idx >= 1 && idx <= len(available) {
			return available[idx-1], true
		}
	}
	return "", false
}

// logicalIndex parses the "lan<N>" form, returning the 1-based index.
func logicalIndex(base string) (int, bool) {
	num, found := strings.CutPrefix(base, "lan")
	if !found || num == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	return idx, true
}
