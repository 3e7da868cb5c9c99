package mapper

import (
	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
)

// toPetTypeRef shrinks a related PetType to its id+name projection. When the
// association was not eagerly loaded, the bare foreign key still yields an
// id-only ref.
func toPetTypeRef(t *domain.PetType, fk *int64) *dto.PetTypeRef {
	switch {
	case t != nil:
		return &dto.PetTypeRef{ID: clone(t.ID), Name: clone(t.Name)}
	case fk != nil:
		return &dto.PetTypeRef{ID: clone(fk)}
	default:
		return nil
	}
}

// toOwnerRef shrinks a related Owner to its id+lastName projection.
func toOwnerRef(o *domain.Owner, fk *int64) *dto.OwnerRef {
	switch {
	case o != nil:
		return &dto.OwnerRef{ID: clone(o.ID), LastName: clone(o.LastName)}
	case fk != nil:
		return &dto.OwnerRef{ID: clone(fk)}
	default:
		return nil
	}
}

// ToPetDTO maps a Pet entity to its wire form, projecting Type and Owner.
func ToPetDTO(e *domain.Pet) *dto.PetDTO {
	if e == nil {
		return nil
	}
	return &dto.PetDTO{
		ID:        clone(e.ID),
		Name:      clone(e.Name),
		BirthDate: localDateOf(e.BirthDate),
		Type:      toPetTypeRef(e.Type, e.TypeID),
		Owner:     toOwnerRef(e.Owner, e.OwnerID),
	}
}

// ToPetEntity maps a wire Pet to its persistence form. Relationship refs are
// resolved to foreign-key ids only; the related rows are attached by the
// store on save.
func ToPetEntity(d *dto.PetDTO) *domain.Pet {
	if d == nil {
		return nil
	}
	e := &domain.Pet{
		ID:        clone(d.ID),
		Name:      clone(d.Name),
		BirthDate: dateOf(d.BirthDate),
	}
	if d.Type != nil {
		e.TypeID = clone(d.Type.ID)
	}
	if d.Owner != nil {
		e.OwnerID = clone(d.Owner.ID)
	}
	return e
}

// PartialUpdatePet applies the non-nil fields of d onto e (merge-patch).
// A present relationship ref rebinds the foreign key and invalidates the
// previously loaded association.
func PartialUpdatePet(e *domain.Pet, d *dto.PetDTO) {
	if e == nil || d == nil {
		return
	}
	if d.Name != nil {
		e.Name = clone(d.Name)
	}
	if d.BirthDate != nil {
		e.BirthDate = dateOf(d.BirthDate)
	}
	if d.Type != nil {
		e.TypeID = clone(d.Type.ID)
		e.Type = nil
	}
	if d.Owner != nil {
		e.OwnerID = clone(d.Owner.ID)
		e.Owner = nil
	}
}
