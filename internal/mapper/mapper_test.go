package mapper

import (
	"testing"
	"time"

	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
)

func idp(v int64) *int64  { return &v }
func sp(v string) *string { return &v }
func dp(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
func ldp(y int, m time.Month, d int) *dto.LocalDate {
	ld := dto.NewLocalDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &ld
}

func TestOwner_RoundTrip(t *testing.T) {
	e := &domain.Owner{
		ID:        idp(7),
		FirstName: sp("Jean"),
		LastName:  sp("Coleman"),
		Address:   sp("105 N. Lake St."),
		City:      sp("Monona"),
		Telephone: sp("6085552654"),
	}

	got := ToOwnerEntity(ToOwnerDTO(e))
	if got == nil || *got.ID != 7 || *got.FirstName != "Jean" || *got.LastName != "Coleman" ||
		*got.Address != "105 N. Lake St." || *got.City != "Monona" || *got.Telephone != "6085552654" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestOwner_MappedValueDoesNotAlias(t *testing.T) {
	e := &domain.Owner{ID: idp(1), LastName: sp("Davis")}
	d := ToOwnerDTO(e)

	*d.LastName = "Changed"
	if *e.LastName != "Davis" {
		t.Fatalf("DTO mutation leaked into the entity")
	}
}

func TestToOwnerDTO_NilInNilOut(t *testing.T) {
	if ToOwnerDTO(nil) != nil || ToOwnerEntity(nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}

func TestPartialUpdateOwner_OmittedFieldsKept(t *testing.T) {
	e := &domain.Owner{ID: idp(1), FirstName: sp("George"), City: sp("Madison")}
	PartialUpdateOwner(e, &dto.OwnerDTO{ID: idp(1), City: sp("Monona")})

	if *e.City != "Monona" {
		t.Fatalf("present field not applied: %+v", e)
	}
	if e.FirstName == nil || *e.FirstName != "George" {
		t.Fatalf("omitted field was clobbered: %+v", e)
	}
}

func TestToPetDTO_ProjectsLoadedAssociations(t *testing.T) {
	e := &domain.Pet{
		ID:        idp(3),
		Name:      sp("Rosy"),
		BirthDate: dp(2011, 4, 17),
		TypeID:    idp(2),
		OwnerID:   idp(4),
		Type:      &domain.PetType{ID: idp(2), Name: sp("dog")},
		Owner:     &domain.Owner{ID: idp(4), LastName: sp("Davis"), Telephone: sp("6085553198")},
	}

	d := ToPetDTO(e)
	if d.Type == nil || *d.Type.ID != 2 || *d.Type.Name != "dog" {
		t.Fatalf("type projection wrong: %+v", d.Type)
	}
	if d.Owner == nil || *d.Owner.ID != 4 || *d.Owner.LastName != "Davis" {
		t.Fatalf("owner projection wrong: %+v", d.Owner)
	}
	if d.BirthDate == nil || d.BirthDate.String() != "2011-04-17" {
		t.Fatalf("birth date wrong: %v", d.BirthDate)
	}
}

func TestToPetDTO_LazyLoadFallsBackToIDOnlyRef(t *testing.T) {
	// Association not preloaded: only the foreign keys are set.
	e := &domain.Pet{ID: idp(3), Name: sp("Rosy"), TypeID: idp(2), OwnerID: idp(4)}

	d := ToPetDTO(e)
	if d.Type == nil || *d.Type.ID != 2 || d.Type.Name != nil {
		t.Fatalf("expected id-only type ref: %+v", d.Type)
	}
	if d.Owner == nil || *d.Owner.ID != 4 || d.Owner.LastName != nil {
		t.Fatalf("expected id-only owner ref: %+v", d.Owner)
	}
}

func TestToPetEntity_RefsResolveToForeignKeysOnly(t *testing.T) {
	d := &dto.PetDTO{
		Name:  sp("Rosy"),
		Type:  &dto.PetTypeRef{ID: idp(2), Name: sp("stale label")},
		Owner: &dto.OwnerRef{ID: idp(4), LastName: sp("stale label")},
	}

	e := ToPetEntity(d)
	if e.TypeID == nil || *e.TypeID != 2 || e.OwnerID == nil || *e.OwnerID != 4 {
		t.Fatalf("foreign keys not resolved: %+v", e)
	}
	// The ref labels are projections; they must never become rows.
	if e.Type != nil || e.Owner != nil {
		t.Fatalf("ref labels must not materialize associations: %+v", e)
	}
}

func TestPartialUpdatePet_DateChangeLeavesName(t *testing.T) {
	e := &domain.Pet{ID: idp(3), Name: sp("Rosy"), BirthDate: dp(2011, 4, 17)}
	PartialUpdatePet(e, &dto.PetDTO{ID: idp(3), BirthDate: ldp(2012, 1, 1)})

	if e.BirthDate.Format("2006-01-02") != "2012-01-01" {
		t.Fatalf("birth date not applied: %v", e.BirthDate)
	}
	if e.Name == nil || *e.Name != "Rosy" {
		t.Fatalf("name must survive a date-only patch: %+v", e)
	}
}

func TestPartialUpdatePet_RebindInvalidatesLoadedAssociation(t *testing.T) {
	e := &domain.Pet{
		ID:     idp(3),
		TypeID: idp(2),
		Type:   &domain.PetType{ID: idp(2), Name: sp("dog")},
	}
	PartialUpdatePet(e, &dto.PetDTO{ID: idp(3), Type: &dto.PetTypeRef{ID: idp(5)}})

	if *e.TypeID != 5 {
		t.Fatalf("foreign key not rebound: %v", *e.TypeID)
	}
	if e.Type != nil {
		t.Fatalf("stale loaded association must be dropped on rebind")
	}
}

func TestToVetDTO_ShrinksSpecialties(t *testing.T) {
	e := &domain.Vet{
		ID:        idp(2),
		FirstName: sp("Helen"),
		LastName:  sp("Leary"),
		Specialties: []*domain.Specialty{
			{ID: idp(1), Name: sp("radiology"), Vets: []*domain.Vet{{ID: idp(2)}}},
			nil,
		},
	}

	d := ToVetDTO(e)
	if len(d.Specialties) != 1 {
		t.Fatalf("nil specialties must be skipped: %+v", d.Specialties)
	}
	if *d.Specialties[0].ID != 1 || *d.Specialties[0].Name != "radiology" {
		t.Fatalf("specialty projection wrong: %+v", d.Specialties[0])
	}
}

func TestToVetEntity_SpecialtyRefsBecomeIDStubs(t *testing.T) {
	d := &dto.VetDTO{
		LastName: sp("Leary"),
		Specialties: []dto.SpecialtyRef{
			{ID: idp(1), Name: sp("radiology")},
			{Name: sp("no id, dropped")},
		},
	}

	e := ToVetEntity(d)
	if len(e.Specialties) != 1 {
		t.Fatalf("id-less refs must be dropped: %+v", e.Specialties)
	}
	if *e.Specialties[0].ID != 1 || e.Specialties[0].Name != nil {
		t.Fatalf("expected an id-only stub: %+v", e.Specialties[0])
	}
}

func TestPartialUpdateVet_AbsentSpecialtiesUntouched(t *testing.T) {
	e := &domain.Vet{
		ID:          idp(2),
		LastName:    sp("Leary"),
		Specialties: []*domain.Specialty{{ID: idp(1), Name: sp("radiology")}},
	}
	PartialUpdateVet(e, &dto.VetDTO{ID: idp(2), FirstName: sp("Helen")})

	if len(e.Specialties) != 1 {
		t.Fatalf("absent specialties field must not clear the association")
	}

	// An empty (but present) list clears it.
	PartialUpdateVet(e, &dto.VetDTO{ID: idp(2), Specialties: []dto.SpecialtyRef{}})
	if len(e.Specialties) != 0 {
		t.Fatalf("present empty list must replace the association")
	}
}

func TestVisit_RoundTripAndPatch(t *testing.T) {
	e := &domain.Visit{
		ID:          idp(1),
		VisitDate:   dp(2013, 1, 1),
		Description: sp("rabies shot"),
		PetID:       idp(7),
	}

	d := ToVisitDTO(e)
	if d.Pet == nil || *d.Pet.ID != 7 || d.VisitDate.String() != "2013-01-01" {
		t.Fatalf("visit projection wrong: %+v", d)
	}

	back := ToVisitEntity(d)
	if *back.PetID != 7 || *back.Description != "rabies shot" {
		t.Fatalf("round trip mismatch: %+v", back)
	}

	PartialUpdateVisit(e, &dto.VisitDTO{ID: idp(1), Description: sp("checkup")})
	if *e.Description != "checkup" || e.VisitDate.Format("2006-01-02") != "2013-01-01" {
		t.Fatalf("patch must only touch present fields: %+v", e)
	}
}

func TestReferenceEntities_RoundTrip(t *testing.T) {
	pt := ToPetTypeEntity(ToPetTypeDTO(&domain.PetType{ID: idp(1), Name: sp("cat")}))
	if *pt.ID != 1 || *pt.Name != "cat" {
		t.Fatalf("pet type round trip: %+v", pt)
	}
	spc := ToSpecialtyEntity(ToSpecialtyDTO(&domain.Specialty{ID: idp(2), Name: sp("surgery")}))
	if *spc.ID != 2 || *spc.Name != "surgery" {
		t.Fatalf("specialty round trip: %+v", spc)
	}
	vs := ToVetSpecialtyEntity(ToVetSpecialtyDTO(&domain.VetSpecialty{ID: idp(3)}))
	if *vs.ID != 3 {
		t.Fatalf("vet specialty round trip: %+v", vs)
	}
}
