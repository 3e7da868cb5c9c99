package mapper

import (
	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
)

// PetType, Specialty, and VetSpecialty are flat reference entities; their
// mappings carry no relationship projections.

// ToPetTypeDTO maps a PetType entity to its wire form.
func ToPetTypeDTO(e *domain.PetType) *dto.PetTypeDTO {
	if e == nil {
		return nil
	}
	return &dto.PetTypeDTO{ID: clone(e.ID), Name: clone(e.Name)}
}

// ToPetTypeEntity maps a wire PetType to its persistence form.
func ToPetTypeEntity(d *dto.PetTypeDTO) *domain.PetType {
	if d == nil {
		return nil
	}
	return &domain.PetType{ID: clone(d.ID), Name: clone(d.Name)}
}

// PartialUpdatePetType applies the non-nil fields of d onto e (merge-patch).
func PartialUpdatePetType(e *domain.PetType, d *dto.PetTypeDTO) {
	if e == nil || d == nil {
		return
	}
	if d.Name != nil {
		e.Name = clone(d.Name)
	}
}

// ToSpecialtyDTO maps a Specialty entity to its wire form. The reciprocal
// vet view is derived, never serialized.
func ToSpecialtyDTO(e *domain.Specialty) *dto.SpecialtyDTO {
	if e == nil {
		return nil
	}
	return &dto.SpecialtyDTO{ID: clone(e.ID), Name: clone(e.Name)}
}

// ToSpecialtyEntity maps a wire Specialty to its persistence form.
func ToSpecialtyEntity(d *dto.SpecialtyDTO) *domain.Specialty {
	if d == nil {
		return nil
	}
	return &domain.Specialty{ID: clone(d.ID), Name: clone(d.Name)}
}

// PartialUpdateSpecialty applies the non-nil fields of d onto e (merge-patch).
func PartialUpdateSpecialty(e *domain.Specialty, d *dto.SpecialtyDTO) {
	if e == nil || d == nil {
		return
	}
	if d.Name != nil {
		e.Name = clone(d.Name)
	}
}

// ToVetSpecialtyDTO maps the identity-only association record to its wire form.
func ToVetSpecialtyDTO(e *domain.VetSpecialty) *dto.VetSpecialtyDTO {
	if e == nil {
		return nil
	}
	return &dto.VetSpecialtyDTO{ID: clone(e.ID)}
}

// ToVetSpecialtyEntity maps a wire VetSpecialty to its persistence form.
func ToVetSpecialtyEntity(d *dto.VetSpecialtyDTO) *domain.VetSpecialty {
	if d == nil {
		return nil
	}
	return &domain.VetSpecialty{ID: clone(d.ID)}
}

// PartialUpdateVetSpecialty is a no-op beyond identity; the record has no
// updatable attributes. Kept so every entity exposes the same mapping
// surface to the generic service.
func PartialUpdateVetSpecialty(e *domain.VetSpecialty, d *dto.VetSpecialtyDTO) {}
