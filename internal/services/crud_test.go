package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petstack/go-petclinic-backend/internal/domain"
	"github.com/petstack/go-petclinic-backend/internal/dto"
	"github.com/petstack/go-petclinic-backend/internal/repo"
	"github.com/petstack/go-petclinic-backend/internal/search"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(newServiceDB(t))
}

func strp(s string) *string { return &s }
func idp(v int64) *int64    { return &v }

func TestCreate_AssignsIDAndIndexes(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	out, err := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Franklin"), City: strp("Madison")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID == nil || *out.ID == 0 {
		t.Fatalf("create must assign an id: %+v", out)
	}

	// Store write happens-before index write: the doc is searchable now.
	hits, total, err := reg.Owners.Search(ctx, "lastName:franklin", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 1 || *hits[0].ID != *out.ID {
		t.Fatalf("created row not mirrored into the index: total=%d", total)
	}
}

func TestCreate_RejectsPresetID(t *testing.T) {
	reg := newRegistry(t)

	_, err := reg.Owners.Create(context.Background(), &dto.OwnerDTO{ID: idp(5), LastName: strp("X")})
	if !errors.Is(err, ErrIDAlreadySet) {
		t.Fatalf("expected ErrIDAlreadySet, got %v", err)
	}
	if reg.Owners.Index.Len() != 0 {
		t.Fatalf("rejected create must not touch the index")
	}
}

func TestUpdate_IdentityRules(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	created, err := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Franklin")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := *created.ID

	if _, err := reg.Owners.Update(ctx, id, &dto.OwnerDTO{LastName: strp("X")}); !errors.Is(err, ErrIDNull) {
		t.Fatalf("missing payload id: got %v", err)
	}
	if _, err := reg.Owners.Update(ctx, id, &dto.OwnerDTO{ID: idp(id + 1), LastName: strp("X")}); !errors.Is(err, ErrIDMismatch) {
		t.Fatalf("mismatched id: got %v", err)
	}
	if _, err := reg.Owners.Update(ctx, 999, &dto.OwnerDTO{ID: idp(999), LastName: strp("X")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("absent target: got %v", err)
	}

	out, err := reg.Owners.Update(ctx, id, &dto.OwnerDTO{ID: idp(id), LastName: strp("Davis")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *out.LastName != "Davis" {
		t.Fatalf("update not applied: %+v", out)
	}

	// The index reflects the replacement, not the original.
	if _, total, _ := reg.Owners.Search(ctx, "franklin", 1, 10); total != 0 {
		t.Fatalf("stale doc survived the update")
	}
	if _, total, _ := reg.Owners.Search(ctx, "davis", 1, 10); total != 1 {
		t.Fatalf("updated doc missing from the index")
	}
}

func TestUpdate_IsWholesale(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	created, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{
		LastName: strp("Franklin"), City: strp("Madison"),
	})
	id := *created.ID

	// PUT without city: the field is replaced with null, not preserved.
	out, err := reg.Owners.Update(ctx, id, &dto.OwnerDTO{ID: idp(id), LastName: strp("Franklin")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.City != nil {
		t.Fatalf("PUT must replace wholesale, city survived: %+v", out)
	}
}

func TestPartialUpdate_MergePatch(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	created, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{
		FirstName: strp("George"), LastName: strp("Franklin"), City: strp("Madison"),
	})
	id := *created.ID

	out, err := reg.Owners.PartialUpdate(ctx, id, &dto.OwnerDTO{ID: idp(id), City: strp("Monona")})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}
	if *out.City != "Monona" {
		t.Fatalf("patched field not applied: %+v", out)
	}
	if out.FirstName == nil || *out.FirstName != "George" || *out.LastName != "Franklin" {
		t.Fatalf("omitted fields must survive the patch: %+v", out)
	}
}

func TestPartialUpdate_AbsentRow(t *testing.T) {
	reg := newRegistry(t)
	_, err := reg.Owners.PartialUpdate(context.Background(), 42, &dto.OwnerDTO{ID: idp(42), City: strp("X")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	reg := newRegistry(t)
	if _, err := reg.Owners.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RemovesRowAndDocument(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	created, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Franklin")})
	id := *created.ID

	if err := reg.Owners.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := reg.Owners.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("row survived the delete")
	}
	if reg.Owners.Index.Len() != 0 {
		t.Fatalf("index document survived the delete")
	}

	// Idempotent end to end.
	if err := reg.Owners.Delete(ctx, id); err != nil {
		t.Fatalf("second delete must succeed: %v", err)
	}
}

func TestSearch_BadQueryPropagates(t *testing.T) {
	reg := newRegistry(t)
	_, _, err := reg.Owners.Search(context.Background(), `lastName:"unterminated`, 1, 10)
	if !errors.Is(err, search.ErrBadQuery) {
		t.Fatalf("expected ErrBadQuery, got %v", err)
	}
}

func TestSearch_HydratesInRelevanceOrder(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	// #2 matches both tokens and must come back first even though #1 has the
	// lower id.
	a, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{FirstName: strp("Anna"), LastName: strp("Franklin")})
	b, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{FirstName: strp("George"), LastName: strp("Franklin")})

	hits, total, err := reg.Owners.Search(ctx, "george franklin", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 2 || *hits[0].ID != *b.ID || *hits[1].ID != *a.ID {
		t.Fatalf("relevance order lost in hydration: %+v", hits)
	}
}

func TestReindex_RebuildsFromStore(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	created, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Franklin")})
	reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Davis")})

	// Simulate a dual-write gap: the mirror lost a document.
	reg.Owners.Index.Delete(*created.ID)
	if _, total, _ := reg.Owners.Search(ctx, "franklin", 1, 10); total != 0 {
		t.Fatalf("precondition: doc should be missing")
	}

	n, err := reg.Owners.Reindex(ctx)
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 documents rebuilt, got %d", n)
	}
	if _, total, _ := reg.Owners.Search(ctx, "franklin", 1, 10); total != 1 {
		t.Fatalf("reindex did not reconcile the gap")
	}
}

func TestReindexAll_CountsPerEntity(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Franklin")})
	reg.PetTypes.Create(ctx, &dto.PetTypeDTO{Name: strp("cat")})
	reg.PetTypes.Create(ctx, &dto.PetTypeDTO{Name: strp("dog")})

	counts, err := reg.ReindexAll(ctx)
	if err != nil {
		t.Fatalf("ReindexAll: %v", err)
	}
	if counts[NameOwner] != 1 || counts[NamePetType] != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(counts) != 7 {
		t.Fatalf("every entity type must be rebuilt, got %d", len(counts))
	}
}

func TestVet_SpecialtiesReplacedOnSave(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	radiology, err := reg.Specialties.Create(ctx, &dto.SpecialtyDTO{Name: strp("radiology")})
	if err != nil {
		t.Fatalf("create specialty: %v", err)
	}
	surgery, err := reg.Specialties.Create(ctx, &dto.SpecialtyDTO{Name: strp("surgery")})
	if err != nil {
		t.Fatalf("create specialty: %v", err)
	}

	vet, err := reg.Vets.Create(ctx, &dto.VetDTO{
		FirstName:   strp("Helen"),
		LastName:    strp("Leary"),
		Specialties: []dto.SpecialtyRef{{ID: radiology.ID}},
	})
	if err != nil {
		t.Fatalf("create vet: %v", err)
	}

	got, err := reg.Vets.Get(ctx, *vet.ID)
	if err != nil {
		t.Fatalf("get vet: %v", err)
	}
	if len(got.Specialties) != 1 || *got.Specialties[0].ID != *radiology.ID {
		t.Fatalf("specialty association not persisted: %+v", got.Specialties)
	}
	// The projection carries the label, not just the id.
	if got.Specialties[0].Name == nil || *got.Specialties[0].Name != "radiology" {
		t.Fatalf("specialty label not hydrated: %+v", got.Specialties[0])
	}

	// Replacing the set via update swaps the join rows wholesale.
	_, err = reg.Vets.Update(ctx, *vet.ID, &dto.VetDTO{
		ID:          vet.ID,
		FirstName:   strp("Helen"),
		LastName:    strp("Leary"),
		Specialties: []dto.SpecialtyRef{{ID: surgery.ID}},
	})
	if err != nil {
		t.Fatalf("update vet: %v", err)
	}
	got, _ = reg.Vets.Get(ctx, *vet.ID)
	if len(got.Specialties) != 1 || *got.Specialties[0].ID != *surgery.ID {
		t.Fatalf("association not replaced: %+v", got.Specialties)
	}
}

func TestVet_PatchWithoutSpecialtiesKeepsThem(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	radiology, _ := reg.Specialties.Create(ctx, &dto.SpecialtyDTO{Name: strp("radiology")})
	vet, err := reg.Vets.Create(ctx, &dto.VetDTO{
		LastName:    strp("Leary"),
		Specialties: []dto.SpecialtyRef{{ID: radiology.ID}},
	})
	if err != nil {
		t.Fatalf("create vet: %v", err)
	}

	_, err = reg.Vets.PartialUpdate(ctx, *vet.ID, &dto.VetDTO{ID: vet.ID, FirstName: strp("Helen")})
	if err != nil {
		t.Fatalf("patch vet: %v", err)
	}
	got, _ := reg.Vets.Get(ctx, *vet.ID)
	if len(got.Specialties) != 1 {
		t.Fatalf("name-only patch must not clear the specialty set: %+v", got.Specialties)
	}
}

func TestSpecialtyDelete_ClearsJoinRows(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	radiology, _ := reg.Specialties.Create(ctx, &dto.SpecialtyDTO{Name: strp("radiology")})
	vet, _ := reg.Vets.Create(ctx, &dto.VetDTO{
		LastName:    strp("Leary"),
		Specialties: []dto.SpecialtyRef{{ID: radiology.ID}},
	})

	if err := reg.Specialties.Delete(ctx, *radiology.ID); err != nil {
		t.Fatalf("delete specialty: %v", err)
	}

	got, err := reg.Vets.Get(ctx, *vet.ID)
	if err != nil {
		t.Fatalf("get vet: %v", err)
	}
	if len(got.Specialties) != 0 {
		t.Fatalf("deleted specialty must vanish from the vet's view: %+v", got.Specialties)
	}
}

func TestPet_EagerProjectionInGet(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	owner, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Davis")})
	cat, _ := reg.PetTypes.Create(ctx, &dto.PetTypeDTO{Name: strp("cat")})
	pet, err := reg.Pets.Create(ctx, &dto.PetDTO{
		Name:  strp("Leo"),
		Type:  &dto.PetTypeRef{ID: cat.ID},
		Owner: &dto.OwnerRef{ID: owner.ID},
	})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}

	got, err := reg.Pets.Get(ctx, *pet.ID)
	if err != nil {
		t.Fatalf("get pet: %v", err)
	}
	if got.Type == nil || got.Type.Name == nil || *got.Type.Name != "cat" {
		t.Fatalf("type label not hydrated: %+v", got.Type)
	}
	if got.Owner == nil || got.Owner.LastName == nil || *got.Owner.LastName != "Davis" {
		t.Fatalf("owner label not hydrated: %+v", got.Owner)
	}
}

func TestListPage_TotalAndPaging(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	for _, last := range []string{"Adams", "Baker", "Clark"} {
		if _, err := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp(last)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	page, total, err := reg.Owners.ListPage(ctx, 2, 2, "id asc", false)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 3 || len(page) != 1 || *page[0].LastName != "Clark" {
		t.Fatalf("page 2: total=%d page=%+v", total, page)
	}

	// Empty store short-circuits with an empty page.
	fresh := newRegistry(t)
	page, total, err = fresh.Owners.ListPage(ctx, 1, 20, "", false)
	if err != nil || total != 0 || len(page) != 0 {
		t.Fatalf("empty store: total=%d page=%v err=%v", total, page, err)
	}
}

func TestIndexWriteReReadsCommittedRow(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	created, _ := reg.Owners.Create(ctx, &dto.OwnerDTO{LastName: strp("Franklin")})

	// Mutate the row behind the service's back, then trigger an index write
	// via PartialUpdate of an unrelated field: the mirrored doc must carry
	// the committed row state, not any stale in-memory copy.
	if err := reg.Owners.DB.WithContext(ctx).Model(&domain.Owner{}).
		Where("id = ?", *created.ID).Update("city", "Madison").Error; err != nil {
		t.Fatalf("raw update: %v", err)
	}
	if _, err := reg.Owners.PartialUpdate(ctx, *created.ID, &dto.OwnerDTO{ID: created.ID, FirstName: strp("George")}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	if _, total, _ := reg.Owners.Search(ctx, "city:madison", 1, 10); total != 1 {
		t.Fatalf("index doc does not reflect the committed row")
	}
}
