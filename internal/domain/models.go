// Package domain defines the persistence models for the veterinary clinic:
// owners, pets and their types, vets and their specialties, and visits.
// These types are mapped with GORM and form the core data layer of the
// application.
//
// Identity semantics: every entity carries a surrogate *int64 ID that is nil
// until the first save and immutable afterwards. Equality is identity-based —
// two records are equal iff both IDs are non-nil and equal. An entity with a
// nil ID is never equal to anything, including a fresh zero value of its own
// type (see Equal on each entity and equalIDs).
package domain

import "time"

// Identifiable is implemented by every entity and DTO that carries a
// surrogate identity. The generic repository and service layers rely on it.
type Identifiable interface {
	GetID() *int64
}

// equalIDs reports identity-based equality: true iff both ids are non-nil
// and hold the same value.
func equalIDs(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}

// Owner represents a pet owner.
//
// Fields:
//   - ID: surrogate identity, assigned on first save.
//   - FirstName / LastName: person name (max 30 runes each).
//   - Address / City: postal details (max 255 / 80).
//   - Telephone: contact number (max 20); treated as PII by the HTTP
//     logging middleware.
type Owner struct {
	ID        *int64  `json:"id"        gorm:"primaryKey;autoIncrement"`
	FirstName *string `json:"firstName" gorm:"size:30"`
	LastName  *string `json:"lastName"  gorm:"size:30"`
	Address   *string `json:"address"   gorm:"size:255"`
	City      *string `json:"city"      gorm:"size:80"`
	Telephone *string `json:"telephone" gorm:"size:20"`
}

// TableName returns the database table name for Owner.
func (Owner) TableName() string { return "owner" }

// GetID returns the surrogate identity (nil until first save).
func (o *Owner) GetID() *int64 { return o.ID }

// Equal reports identity-based equality with another owner.
func (o *Owner) Equal(other *Owner) bool {
	return o != nil && other != nil && equalIDs(o.ID, other.ID)
}

// PetType is a reference entity naming a kind of pet (cat, dog, ...).
type PetType struct {
	ID   *int64  `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name *string `json:"name" gorm:"size:30"`
}

// TableName returns the database table name for PetType.
func (PetType) TableName() string { return "pet_type" }

// GetID returns the surrogate identity (nil until first save).
func (t *PetType) GetID() *int64 { return t.ID }

// Equal reports identity-based equality with another pet type.
func (t *PetType) Equal(other *PetType) bool {
	return t != nil && other != nil && equalIDs(t.ID, other.ID)
}

// Pet represents an animal registered with the clinic. It points to its
// PetType and Owner via nullable foreign keys; both associations are loaded
// lazily unless the caller requests eager loading.
type Pet struct {
	ID        *int64     `json:"id"        gorm:"primaryKey;autoIncrement"`
	Name      *string    `json:"name"      gorm:"size:30"`
	BirthDate *time.Time `json:"birthDate" gorm:"type:date"`
	TypeID    *int64     `json:"-"         gorm:"column:type_id"`
	OwnerID   *int64     `json:"-"         gorm:"column:owner_id"`

	// Type and Owner are resolved from TypeID/OwnerID on eager loads.
	Type  *PetType `json:"type,omitempty"  gorm:"foreignKey:TypeID"`
	Owner *Owner   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// TableName returns the database table name for Pet.
func (Pet) TableName() string { return "pet" }

// GetID returns the surrogate identity (nil until first save).
func (p *Pet) GetID() *int64 { return p.ID }

// Equal reports identity-based equality with another pet.
func (p *Pet) Equal(other *Pet) bool {
	return p != nil && other != nil && equalIDs(p.ID, other.ID)
}

// Specialty is a veterinary discipline (radiology, surgery, ...). The Vet
// side of the many-to-many relationship is the owning side; Vets here is the
// derived reciprocal view.
type Specialty struct {
	ID   *int64  `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name *string `json:"name" gorm:"size:80"`

	Vets []*Vet `json:"-" gorm:"many2many:rel_vet__specialties;joinForeignKey:specialties_id;joinReferences:vet_id"`
}

// TableName returns the database table name for Specialty.
func (Specialty) TableName() string { return "specialty" }

// GetID returns the surrogate identity (nil until first save).
func (s *Specialty) GetID() *int64 { return s.ID }

// Equal reports identity-based equality with another specialty.
func (s *Specialty) Equal(other *Specialty) bool {
	return s != nil && other != nil && equalIDs(s.ID, other.ID)
}

// Vet represents a veterinarian. Specialties is a many-to-many association
// persisted through the rel_vet__specialties join table; within a unit of
// work both sides' views are derived from the association pair set (see
// associations.go) rather than hand-synced mirrored pointers.
type Vet struct {
	ID        *int64  `json:"id"        gorm:"primaryKey;autoIncrement"`
	FirstName *string `json:"firstName" gorm:"size:30"`
	LastName  *string `json:"lastName"  gorm:"size:30"`

	Specialties []*Specialty `json:"specialties,omitempty" gorm:"many2many:rel_vet__specialties;joinForeignKey:vet_id;joinReferences:specialties_id"`
}

// TableName returns the database table name for Vet.
func (Vet) TableName() string { return "vet" }

// GetID returns the surrogate identity (nil until first save).
func (v *Vet) GetID() *int64 { return v.ID }

// Equal reports identity-based equality with another vet.
func (v *Vet) Equal(other *Vet) bool {
	return v != nil && other != nil && equalIDs(v.ID, other.ID)
}

// VetSpecialty is an identity-only association record. It exists as an
// explicit entity (rather than an implicit join table) so that pairings can
// be created, listed, and searched independently.
type VetSpecialty struct {
	ID *int64 `json:"id" gorm:"primaryKey;autoIncrement"`
}

// TableName returns the database table name for VetSpecialty.
func (VetSpecialty) TableName() string { return "vet_specialty" }

// GetID returns the surrogate identity (nil until first save).
func (vs *VetSpecialty) GetID() *int64 { return vs.ID }

// Equal reports identity-based equality with another vet specialty.
func (vs *VetSpecialty) Equal(other *VetSpecialty) bool {
	return vs != nil && other != nil && equalIDs(vs.ID, other.ID)
}

// Visit records a pet's appointment at the clinic.
type Visit struct {
	ID          *int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	VisitDate   *time.Time `json:"visitDate"   gorm:"type:date"`
	Description *string    `json:"description" gorm:"size:255"`
	PetID       *int64     `json:"-"           gorm:"column:pet_id"`

	Pet *Pet `json:"pet,omitempty" gorm:"foreignKey:PetID"`
}

// TableName returns the database table name for Visit.
func (Visit) TableName() string { return "visit" }

// GetID returns the surrogate identity (nil until first save).
func (v *Visit) GetID() *int64 { return v.ID }

// Equal reports identity-based equality with another visit.
func (v *Visit) Equal(other *Visit) bool {
	return v != nil && other != nil && equalIDs(v.ID, other.ID)
}
