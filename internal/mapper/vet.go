package mapper

import (
	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
)

// ToVetDTO maps a Vet entity to its wire form, shrinking each specialty to
// its id+name projection.
func ToVetDTO(e *domain.Vet) *dto.VetDTO {
	if e == nil {
		return nil
	}
	d := &dto.VetDTO{
		ID:        clone(e.ID),
		FirstName: clone(e.FirstName),
		LastName:  clone(e.LastName),
	}
	for _, sp := range e.Specialties {
		if sp == nil {
			continue
		}
		d.Specialties = append(d.Specialties, dto.SpecialtyRef{
			ID:   clone(sp.ID),
			Name: clone(sp.Name),
		})
	}
	return d
}

// ToVetEntity maps a wire Vet to its persistence form. Specialty refs are
// reduced to id-only stubs; the store resolves them against the join table
// when the association is replaced on save.
func ToVetEntity(d *dto.VetDTO) *domain.Vet {
	if d == nil {
		return nil
	}
	e := &domain.Vet{
		ID:        clone(d.ID),
		FirstName: clone(d.FirstName),
		LastName:  clone(d.LastName),
	}
	for _, ref := range d.Specialties {
		if ref.ID == nil {
			continue
		}
		e.Specialties = append(e.Specialties, &domain.Specialty{ID: clone(ref.ID)})
	}
	return e
}

// PartialUpdateVet applies the non-nil fields of d onto e (merge-patch).
// A present specialties list replaces the association wholesale; an absent
// one leaves it untouched.
func PartialUpdateVet(e *domain.Vet, d *dto.VetDTO) {
	if e == nil || d == nil {
		return
	}
	if d.FirstName != nil {
		e.FirstName = clone(d.FirstName)
	}
	if d.LastName != nil {
		e.LastName = clone(d.LastName)
	}
	if d.Specialties != nil {
		e.Specialties = ToVetEntity(d).Specialties
	}
}
