// Package matcher resolves free-text payer names to roster members.
//
// Payer names arriving from the payment network are untrusted free text:
// they drop middle names, add suffixes, or change casing. Exact match on
// the normalized name covers the common case; a substring fallback recovers
// most partial-name cases at the cost of possible false positives on short
// or repeated names.
package matcher

import (
	"strings"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// Normalize reduces a name to its identity key: lower-case, surrounding
// whitespace trimmed. Roster names are assumed unique under this key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve finds the roster member for a raw payer name. Exact normalized
// match wins; otherwise the first member (in roster order) whose normalized
// name contains the payer name, or is contained by it, is returned.
// Ties between substring candidates are not broken further; first match in
// roster order is a deliberate best-effort policy.
//
// The second return value is false when no member matches. An empty payer
// name never matches.
func Resolve(payerName string, members []models.Member) (*models.Member, bool) {
	key := Normalize(payerName)
	if key == "" {
		return nil, false
	}

	for i := range members {
		if Normalize(members[i].Name) == key {
			return &members[i], true
		}
	}

	for i := range members {
		name := Normalize(members[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return &members[i], true
		}
	}

	return nil, false
}
