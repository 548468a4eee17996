package memory_test

import (
	"context"
	"errors"
	"testing"

	"pets-service/internal/adapters/storage/document"
	"pets-service/internal/adapters/storage/memory"
	"pets-service/internal/domain/pets"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryPetRepo(t *testing.T) {
	Convey("Given an in-memory pet repository", t, func() {
		ctx := context.Background()
		repo := memory.NewPetRepo()

		Convey("It starts empty", func() {
			items, err := repo.List(ctx)
			So(err, ShouldBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("Mutations are visible to later reads", func() {
			err := repo.Mutate(ctx, func(items []pets.Pet) ([]pets.Pet, error) {
				return append(items, pets.Pet{Name: "Rex", Type: "dog"}), nil
			})
			So(err, ShouldBeNil)

			items, err := repo.List(ctx)
			So(err, ShouldBeNil)
			So(items, ShouldResemble, []pets.Pet{{Name: "Rex", Type: "dog"}})

			Convey("And callers cannot alias the stored collection", func() {
				items[0].Name = "Changed"
				again, _ := repo.List(ctx)
				So(again[0].Name, ShouldEqual, "Rex")
			})
		})

		Convey("A seeded corrupt document surfaces ErrCorruptDocument", func() {
			bad := memory.NewPetRepoWithDocument([]byte("[{"))
			_, err := bad.List(ctx)
			So(errors.Is(err, document.ErrCorruptDocument), ShouldBeTrue)
		})
	})
}
