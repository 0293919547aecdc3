package entities

import (
	"fmt"
	"strings"
)

// ManufacturerID is one normalized record of ids.json.
// Field order matches the order keys are written in.
type ManufacturerID struct {
	ID           []int  `json:"id"`
	Manufacturer string `json:"manufacturer"`
	Group        string `json:"group"`
	Reserved     bool   `json:"reserved"`
	Status       string `json:"status,omitempty"`
}

// Key returns the id in registry notation, e.g. "00.21.1D".
func (m ManufacturerID) Key() string {
	return IDKey(m.ID)
}

// IDKey formats id bytes as upper-case, zero padded, dot separated hex.
func IDKey(id []int) string {
	parts := make([]string, len(id))
	for i, b := range id {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ".")
}
