package mapper

import (
	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
)

// ToOwnerDTO maps an Owner entity to its wire form.
func ToOwnerDTO(e *domain.Owner) *dto.OwnerDTO {
	if e == nil {
		return nil
	}
	return &dto.OwnerDTO{
		ID:        clone(e.ID),
		FirstName: clone(e.FirstName),
		LastName:  clone(e.LastName),
		Address:   clone(e.Address),
		City:      clone(e.City),
		Telephone: clone(e.Telephone),
	}
}

// ToOwnerEntity maps a wire Owner to its persistence form.
func ToOwnerEntity(d *dto.OwnerDTO) *domain.Owner {
	if d == nil {
		return nil
	}
	return &domain.Owner{
		ID:        clone(d.ID),
		FirstName: clone(d.FirstName),
		LastName:  clone(d.LastName),
		Address:   clone(d.Address),
		City:      clone(d.City),
		Telephone: clone(d.Telephone),
	}
}

// PartialUpdateOwner applies the non-nil fields of d onto e (merge-patch).
func PartialUpdateOwner(e *domain.Owner, d *dto.OwnerDTO) {
	if e == nil || d == nil {
		return
	}
	if d.FirstName != nil {
		e.FirstName = clone(d.FirstName)
	}
	if d.LastName != nil {
		e.LastName = clone(d.LastName)
	}
	if d.Address != nil {
		e.Address = clone(d.Address)
	}
	if d.City != nil {
		e.City = clone(d.City)
	}
	if d.Telephone != nil {
		e.Telephone = clone(d.Telephone)
	}
}
