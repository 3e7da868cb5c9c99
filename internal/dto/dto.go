// Package dto defines the wire-level representations of the domain entities.
//
// All scalar fields are pointers so that merge-patch requests can tell
// "absent" apart from "set to zero value". Related entities are never
// embedded whole: they are projected down to an id plus a single label field
// (PetTypeRef, OwnerRef, PetRef, SpecialtyRef) to avoid cyclic serialization
// and to keep payloads flat. The projection is intentionally lossy — mapping
// a DTO back to an entity only resolves the ref ids onto foreign keys.
package dto

// OwnerDTO is the wire form of domain.Owner.
type OwnerDTO struct {
	ID        *int64  `json:"id"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	Telephone *string `json:"telephone,omitempty"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *OwnerDTO) GetID() *int64 { return d.ID }

// PetTypeDTO is the wire form of domain.PetType.
type PetTypeDTO struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name,omitempty"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *PetTypeDTO) GetID() *int64 { return d.ID }

// PetTypeRef is the shrunk projection of a related PetType: id + name.
type PetTypeRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name,omitempty"`
}

// OwnerRef is the shrunk projection of a related Owner: id + lastName.
type OwnerRef struct {
	ID       *int64  `json:"id"`
	LastName *string `json:"lastName,omitempty"`
}

// PetRef is the shrunk projection of a related Pet: id + name.
type PetRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name,omitempty"`
}

// SpecialtyRef is the shrunk projection of a related Specialty: id + name.
type SpecialtyRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name,omitempty"`
}

// PetDTO is the wire form of domain.Pet. Type and Owner are projections;
// on inbound payloads only their ids are honored.
type PetDTO struct {
	ID        *int64      `json:"id"`
	Name      *string     `json:"name,omitempty"`
	BirthDate *LocalDate  `json:"birthDate,omitempty"`
	Type      *PetTypeRef `json:"type,omitempty"`
	Owner     *OwnerRef   `json:"owner,omitempty"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *PetDTO) GetID() *int64 { return d.ID }

// SpecialtyDTO is the wire form of domain.Specialty. The vet side of the
// relationship is not serialized (it is the derived view).
type SpecialtyDTO struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name,omitempty"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *SpecialtyDTO) GetID() *int64 { return d.ID }

// VetDTO is the wire form of domain.Vet. Specialties are shrunk to
// id + name projections.
type VetDTO struct {
	ID          *int64         `json:"id"`
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Specialties []SpecialtyRef `json:"specialties,omitempty"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *VetDTO) GetID() *int64 { return d.ID }

// VetSpecialtyDTO is the wire form of the identity-only VetSpecialty record.
type VetSpecialtyDTO struct {
	ID *int64 `json:"id"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *VetSpecialtyDTO) GetID() *int64 { return d.ID }

// VisitDTO is the wire form of domain.Visit. Pet is a projection; on
// inbound payloads only its id is honored.
type VisitDTO struct {
	ID          *int64     `json:"id"`
	VisitDate   *LocalDate `json:"visitDate,omitempty"`
	Description *string    `json:"description,omitempty"`
	Pet         *PetRef    `json:"pet,omitempty"`
}

// GetID returns the DTO identity (nil on create payloads).
func (d *VisitDTO) GetID() *int64 { return d.ID }
