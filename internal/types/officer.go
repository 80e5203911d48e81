// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Officer is a roster entry. Only the identifier, synergy group, level, rank and power take part
// in scoring; the rest is descriptive.
type Officer struct {
	ID           OfficerID      `json:"id" validate:"required"`
	Name         string         `json:"name"`
	SynergyGroup SynergyGroupID `json:"synergy_group,omitempty"`
	Level        int            `json:"level" validate:"min=0"`
	Rank         int            `json:"rank" validate:"min=0"`
	Power        float64        `json:"power" validate:"min=0"`
	Faction      string         `json:"faction,omitempty"`
	Rarity       string         `json:"rarity,omitempty"`
}

// DisplayName returns the officer's name, falling back to the identifier.
func (o Officer) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return string(o.ID)
}

// Reservation is an availability constraint on one officer.
type Reservation struct {
	ReservedFor string `json:"reserved_for,omitempty"`
	Locked      bool   `json:"locked"`
}

// Reservations maps officers to their availability constraints. A hard lock excludes the
// officer from every crew; a soft reservation is advisory only.
type Reservations map[OfficerID]Reservation

// IsLocked reports whether the officer is hard-locked.
func (r Reservations) IsLocked(id OfficerID) bool {
	return r[id].Locked
}

// SoftLabel returns the reservation label of an officer that is reserved but not locked.
func (r Reservations) SoftLabel(id OfficerID) (string, bool) {
	res, ok := r[id]
	if !ok || res.Locked || res.ReservedFor == "" {
		return "", false
	}
	return res.ReservedFor, true
}
