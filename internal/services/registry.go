// Package services — per-entity service registry.
//
// The registry binds the generic CrudService to each clinic entity: its
// mapper functions, its search-document shape, its eager-loaded
// associations, and its relationship maintenance hooks. This is the single
// place where the seven entity types are enumerated.
package services

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
	"github.com/petstack/go-petclinic-backend/internal/mapper"
	"github.com/petstack/go-petclinic-backend/internal/search"
)

// Entity-type names used for index naming, logs, spans, and metrics labels.
const (
	NameOwner        = "owner"
	NamePetType      = "petType"
	NamePet          = "pet"
	NameSpecialty    = "specialty"
	NameVet          = "vet"
	NameVetSpecialty = "vetSpecialty"
	NameVisit        = "visit"
)

// Registry holds the service instance for every entity type.
type Registry struct {
	Owners         *CrudService[domain.Owner, dto.OwnerDTO]
	PetTypes       *CrudService[domain.PetType, dto.PetTypeDTO]
	Pets           *CrudService[domain.Pet, dto.PetDTO]
	Specialties    *CrudService[domain.Specialty, dto.SpecialtyDTO]
	Vets           *CrudService[domain.Vet, dto.VetDTO]
	VetSpecialties *CrudService[domain.VetSpecialty, dto.VetSpecialtyDTO]
	Visits         *CrudService[domain.Visit, dto.VisitDTO]
}

// NewRegistry wires a service (and a fresh index mirror) for each entity.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		Owners: &CrudService[domain.Owner, dto.OwnerDTO]{
			DB:       db,
			Index:    search.NewIndex(NameOwner),
			Name:     NameOwner,
			EntityID: (*domain.Owner).GetID,
			DTOID:    (*dto.OwnerDTO).GetID,
			ToDTO:    mapper.ToOwnerDTO,
			ToEntity: mapper.ToOwnerEntity,
			Merge:    mapper.PartialUpdateOwner,
			Doc:      ownerDoc,
		},
		PetTypes: &CrudService[domain.PetType, dto.PetTypeDTO]{
			DB:       db,
			Index:    search.NewIndex(NamePetType),
			Name:     NamePetType,
			EntityID: (*domain.PetType).GetID,
			DTOID:    (*dto.PetTypeDTO).GetID,
			ToDTO:    mapper.ToPetTypeDTO,
			ToEntity: mapper.ToPetTypeEntity,
			Merge:    mapper.PartialUpdatePetType,
			Doc:      petTypeDoc,
		},
		Pets: &CrudService[domain.Pet, dto.PetDTO]{
			DB:       db,
			Index:    search.NewIndex(NamePet),
			Name:     NamePet,
			EntityID: (*domain.Pet).GetID,
			DTOID:    (*dto.PetDTO).GetID,
			ToDTO:    mapper.ToPetDTO,
			ToEntity: mapper.ToPetEntity,
			Merge:    mapper.PartialUpdatePet,
			Doc:      petDoc,
			Preloads: []string{"Type", "Owner"},
		},
		Specialties: &CrudService[domain.Specialty, dto.SpecialtyDTO]{
			DB:       db,
			Index:    search.NewIndex(NameSpecialty),
			Name:     NameSpecialty,
			EntityID: (*domain.Specialty).GetID,
			DTOID:    (*dto.SpecialtyDTO).GetID,
			ToDTO:    mapper.ToSpecialtyDTO,
			ToEntity: mapper.ToSpecialtyEntity,
			Merge:    mapper.PartialUpdateSpecialty,
			Doc:      specialtyDoc,
			// A deleted specialty disappears from every vet's view.
			BeforeDelete: func(ctx context.Context, db *gorm.DB, id int64) error {
				return db.WithContext(ctx).
					Exec("DELETE FROM rel_vet__specialties WHERE specialties_id = ?", id).Error
			},
		},
		Vets: &CrudService[domain.Vet, dto.VetDTO]{
			DB:       db,
			Index:    search.NewIndex(NameVet),
			Name:     NameVet,
			EntityID: (*domain.Vet).GetID,
			DTOID:    (*dto.VetDTO).GetID,
			ToDTO:    mapper.ToVetDTO,
			ToEntity: mapper.ToVetEntity,
			Merge:    mapper.PartialUpdateVet,
			Doc:      vetDoc,
			Preloads: []string{"Specialties"},
			// The specialties set on the entity is the desired state; replace
			// the join rows to match it.
			AfterSave: func(ctx context.Context, db *gorm.DB, v *domain.Vet) error {
				return db.WithContext(ctx).Model(v).
					Association("Specialties").Replace(v.Specialties)
			},
			BeforeDelete: func(ctx context.Context, db *gorm.DB, id int64) error {
				return db.WithContext(ctx).
					Exec("DELETE FROM rel_vet__specialties WHERE vet_id = ?", id).Error
			},
			AfterLoad: domain.RelinkVetSpecialties,
		},
		VetSpecialties: &CrudService[domain.VetSpecialty, dto.VetSpecialtyDTO]{
			DB:       db,
			Index:    search.NewIndex(NameVetSpecialty),
			Name:     NameVetSpecialty,
			EntityID: (*domain.VetSpecialty).GetID,
			DTOID:    (*dto.VetSpecialtyDTO).GetID,
			ToDTO:    mapper.ToVetSpecialtyDTO,
			ToEntity: mapper.ToVetSpecialtyEntity,
			Merge:    mapper.PartialUpdateVetSpecialty,
			Doc:      vetSpecialtyDoc,
		},
		Visits: &CrudService[domain.Visit, dto.VisitDTO]{
			DB:       db,
			Index:    search.NewIndex(NameVisit),
			Name:     NameVisit,
			EntityID: (*domain.Visit).GetID,
			DTOID:    (*dto.VisitDTO).GetID,
			ToDTO:    mapper.ToVisitDTO,
			ToEntity: mapper.ToVisitEntity,
			Merge:    mapper.PartialUpdateVisit,
			Doc:      visitDoc,
			Preloads: []string{"Pet"},
		},
	}
}

// Reindexer rebuilds one entity's index mirror from the store. Implemented
// by every CrudService instantiation.
type Reindexer interface {
	Reindex(ctx context.Context) (int, error)
}

// Reindexers returns the rebuilders keyed by entity name, for the admin
// reindex endpoint and the startup rebuild.
func (r *Registry) Reindexers() map[string]Reindexer {
	return map[string]Reindexer{
		NameOwner:        r.Owners,
		NamePetType:      r.PetTypes,
		NamePet:          r.Pets,
		NameSpecialty:    r.Specialties,
		NameVet:          r.Vets,
		NameVetSpecialty: r.VetSpecialties,
		NameVisit:        r.Visits,
	}
}

// ReindexAll rebuilds every index mirror and returns the per-entity document
// counts. Rebuilds are independent; the first failure aborts.
func (r *Registry) ReindexAll(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 7)
	for name, rx := range r.Reindexers() {
		n, err := rx.Reindex(ctx)
		if err != nil {
			return counts, err
		}
		counts[name] = n
	}
	return counts, nil
}

// ---- search document builders ----
//
// Documents carry the entity's own scalar fields (matching the wire names,
// lowercased by the index) plus the id; relationship labels stay in the
// store and are hydrated on search hits.

func fieldStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func fieldDate(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format("2006-01-02")
}

func fieldID(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func idOf(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func ownerDoc(e *domain.Owner) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id":        fieldID(e.ID),
		"firstName": fieldStr(e.FirstName),
		"lastName":  fieldStr(e.LastName),
		"address":   fieldStr(e.Address),
		"city":      fieldStr(e.City),
		"telephone": fieldStr(e.Telephone),
	}}
}

func petTypeDoc(e *domain.PetType) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id":   fieldID(e.ID),
		"name": fieldStr(e.Name),
	}}
}

func petDoc(e *domain.Pet) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id":        fieldID(e.ID),
		"name":      fieldStr(e.Name),
		"birthDate": fieldDate(e.BirthDate),
	}}
}

func specialtyDoc(e *domain.Specialty) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id":   fieldID(e.ID),
		"name": fieldStr(e.Name),
	}}
}

func vetDoc(e *domain.Vet) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id":        fieldID(e.ID),
		"firstName": fieldStr(e.FirstName),
		"lastName":  fieldStr(e.LastName),
	}}
}

func vetSpecialtyDoc(e *domain.VetSpecialty) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id": fieldID(e.ID),
	}}
}

func visitDoc(e *domain.Visit) search.Document {
	return search.Document{ID: idOf(e.ID), Fields: map[string]string{
		"id":          fieldID(e.ID),
		"visitDate":   fieldDate(e.VisitDate),
		"description": fieldStr(e.Description),
	}}
}
