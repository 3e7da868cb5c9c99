package mapper

import (
	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
)

// toPetRef shrinks a related Pet to its id+name projection.
func toPetRef(p *domain.Pet, fk *int64) *dto.PetRef {
	switch {
	case p != nil:
		return &dto.PetRef{ID: clone(p.ID), Name: clone(p.Name)}
	case fk != nil:
		return &dto.PetRef{ID: clone(fk)}
	default:
		return nil
	}
}

// ToVisitDTO maps a Visit entity to its wire form, projecting the pet.
func ToVisitDTO(e *domain.Visit) *dto.VisitDTO {
	if e == nil {
		return nil
	}
	return &dto.VisitDTO{
		ID:          clone(e.ID),
		VisitDate:   localDateOf(e.VisitDate),
		Description: clone(e.Description),
		Pet:         toPetRef(e.Pet, e.PetID),
	}
}

// ToVisitEntity maps a wire Visit to its persistence form; the pet ref is
// resolved to a foreign-key id only.
func ToVisitEntity(d *dto.VisitDTO) *domain.Visit {
	if d == nil {
		return nil
	}
	e := &domain.Visit{
		ID:          clone(d.ID),
		VisitDate:   dateOf(d.VisitDate),
		Description: clone(d.Description),
	}
	if d.Pet != nil {
		e.PetID = clone(d.Pet.ID)
	}
	return e
}

// PartialUpdateVisit applies the non-nil fields of d onto e (merge-patch).
func PartialUpdateVisit(e *domain.Visit, d *dto.VisitDTO) {
	if e == nil || d == nil {
		return
	}
	if d.VisitDate != nil {
		e.VisitDate = dateOf(d.VisitDate)
	}
	if d.Description != nil {
		e.Description = clone(d.Description)
	}
	if d.Pet != nil {
		e.PetID = clone(d.Pet.ID)
		e.Pet = nil
	}
}
