// Package registry provides the canonical entity registry and its derived
// alias index. A registry is loaded once per processing run, validated, and
// treated as read-only thereafter; the alias index built from it may be
// shared freely across concurrent resolver calls.
package registry

import (
	"time"
)

// Category distinguishes ordinary participants from control entities such
// as a presiding officer, whose edges carry procedural semantics.
type Category string

const (
	// CategoryParticipant is an ordinary debating member.
	CategoryParticipant Category = "participant"

	// CategoryControl is a presiding entity (e.g. the Speaker of the
	// House). Edges touching a control entity are tagged procedural and
	// excluded from the political graph by default.
	CategoryControl Category = "control"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the defined constants.
func (c Category) IsValid() bool {
	return c == CategoryParticipant || c == CategoryControl
}

// Affiliation is a party affiliation.
type Affiliation string

// Known affiliations for the current parliament.
const (
	AffiliationPLP Affiliation = "PLP"
	AffiliationFNM Affiliation = "FNM"
	AffiliationCOI Affiliation = "COI"
	AffiliationIND Affiliation = "IND"
	AffiliationDNA Affiliation = "DNA"
)

// String returns the string representation of the Affiliation.
func (a Affiliation) String() string {
	return string(a)
}

// IsValid checks if the Affiliation is one of the defined constants.
func (a Affiliation) IsValid() bool {
	switch a {
	case AffiliationPLP, AffiliationFNM, AffiliationCOI, AffiliationIND, AffiliationDNA:
		return true
	default:
		return false
	}
}

// SeatStatus represents the status of an entity's seat.
type SeatStatus string

const (
	// SeatActive indicates a sitting member.
	SeatActive SeatStatus = "active"

	// SeatFormer indicates a member no longer sitting for reasons not
	// covered by the more specific statuses.
	SeatFormer SeatStatus = "former"

	// SeatResigned indicates the member resigned during the term.
	SeatResigned SeatStatus = "resigned"

	// SeatDeceased indicates the member died during the term.
	SeatDeceased SeatStatus = "deceased"

	// SeatSuspended indicates the member is suspended.
	SeatSuspended SeatStatus = "suspended"
)

// String returns the string representation of the SeatStatus.
func (s SeatStatus) String() string {
	return string(s)
}

// IsValid checks if the SeatStatus is one of the defined constants.
func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatActive, SeatFormer, SeatResigned, SeatDeceased, SeatSuspended:
		return true
	default:
		return false
	}
}

// ISODate is a calendar date in ISO-8601 (YYYY-MM-DD) form. Zero-padded
// ISO dates compare correctly as strings, which the temporal filtering
// relies on; Parse validates the format at registry load.
type ISODate string

// IsZero reports whether the date is unset.
func (d ISODate) IsZero() bool {
	return d == ""
}

// Time parses the date. Callers that only compare dates can use plain
// string ordering instead.
func (d ISODate) Time() (time.Time, error) {
	return time.Parse("2006-01-02", string(d))
}

// Before reports whether d is strictly earlier than other.
func (d ISODate) Before(other ISODate) bool {
	return string(d) < string(other)
}

// RoleTenure is a single role held by an entity over a specific period.
// An empty EndDate means the tenure is currently open.
type RoleTenure struct {
	Title      string  `json:"title"`
	ShortTitle string  `json:"short_title,omitempty"`
	StartDate  ISODate `json:"start_date"`
	EndDate    ISODate `json:"end_date,omitempty"`
}

// Contains reports whether the tenure is in force on the given date,
// using the half-open interval [start, end).
func (rt RoleTenure) Contains(d ISODate) bool {
	if d.IsZero() {
		return true
	}
	if d.Before(rt.StartDate) {
		return false
	}
	if rt.EndDate.IsZero() {
		return true
	}
	return d.Before(rt.EndDate)
}

// overlaps reports whether two tenures' validity windows intersect.
func (rt RoleTenure) overlaps(other RoleTenure) bool {
	if !rt.EndDate.IsZero() && !other.StartDate.Before(rt.EndDate) {
		return false
	}
	if !other.EndDate.IsZero() && !rt.StartDate.Before(other.EndDate) {
		return false
	}
	return true
}

// Entity is a canonical legislator record. IDs are immutable once assigned.
type Entity struct {
	ID            string       `json:"id"`
	LegalName     string       `json:"legal_name"`
	CommonName    string       `json:"common_name"`
	Category      Category     `json:"category"`
	Affiliation   Affiliation  `json:"affiliation"`
	Constituency  string       `json:"constituency,omitempty"`
	Status        SeatStatus   `json:"status"`
	FirstElected  string       `json:"first_elected,omitempty"`
	RoleTenures   []RoleTenure `json:"role_tenures,omitempty"`
	ManualAliases []string     `json:"manual_aliases,omitempty"`
}

// TenuresOn returns the role tenures in force on the given date. A zero
// date returns all tenures.
func (e *Entity) TenuresOn(d ISODate) []RoleTenure {
	var active []RoleTenure
	for _, rt := range e.RoleTenures {
		if rt.Contains(d) {
			active = append(active, rt)
		}
	}
	return active
}

// CollisionRecord documents an alias known to be shared by multiple
// entities at the same time, along with the documented resolution policy.
type CollisionRecord struct {
	Alias              string   `json:"alias"`
	Claimants          []string `json:"claimants"`
	ResolutionStrategy string   `json:"resolution_strategy"`
}

// Metadata describes the registry version and provenance.
type Metadata struct {
	Version         string `json:"version"`
	Parliament      string `json:"parliament,omitempty"`
	ParliamentStart string `json:"parliament_start,omitempty"`
	TotalSeats      int    `json:"total_seats,omitempty"`
	LastUpdated     string `json:"last_updated,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Registry is the immutable-per-version store of canonical entities.
type Registry struct {
	Metadata   Metadata          `json:"metadata"`
	Entities   []Entity          `json:"entities"`
	Collisions []CollisionRecord `json:"alias_collisions,omitempty"`

	byID map[string]*Entity
}

// Entity returns the entity with the given id, or nil.
func (r *Registry) Entity(id string) *Entity {
	return r.byID[id]
}

// Version returns the registry version string.
func (r *Registry) Version() string {
	return r.Metadata.Version
}

// index builds the id lookup map. Called once at load.
func (r *Registry) index() {
	r.byID = make(map[string]*Entity, len(r.Entities))
	for i := range r.Entities {
		r.byID[r.Entities[i].ID] = &r.Entities[i]
	}
}
