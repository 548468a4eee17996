package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pets-service/internal/client"
	"pets-service/internal/domain/pets"
	"pets-service/internal/platform/httpclient"
	"pets-service/internal/router"

	. "github.com/smartystreets/goconvey/convey"
)

func str(s string) *string { return &s }

func TestClient(t *testing.T) {
	Convey("Given the API running on an in-memory repo", t, func() {
		ts := httptest.NewServer(router.NewRouter(router.Options{}))
		Reset(ts.Close)

		c, err := client.New(ts.URL, time.Second)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("List starts empty", func() {
			items, err := c.List(ctx)
			So(err, ShouldBeNil)
			So(items, ShouldNotBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("Create then Update round-trips through the API", func() {
			created, err := c.Create(ctx, client.PetInput{Name: str("Rex"), Type: str("dog")})
			So(err, ShouldBeNil)
			So(created.ID, ShouldNotBeNil)
			So(*created.ID, ShouldEqual, 1)

			updated, err := c.Update(ctx, *created.ID, client.PetInput{Name: str("Max"), Type: str("dog")})
			So(err, ShouldBeNil)
			So(updated.Name, ShouldEqual, "Max")

			items, err := c.List(ctx)
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)
			So(items[0].Name, ShouldEqual, "Max")
		})

		Convey("Validation errors surface the API message", func() {
			_, err := c.Create(ctx, client.PetInput{Name: str("Rex")})
			So(httpclient.StatusCode(err), ShouldEqual, http.StatusBadRequest)
			So(err.(*httpclient.HTTPError).Message, ShouldEqual, pets.MsgCreateFieldsRequired)

			_, err = c.Update(ctx, 7, client.PetInput{})
			So(httpclient.StatusCode(err), ShouldEqual, http.StatusNotFound)
			So(err.(*httpclient.HTTPError).Message, ShouldEqual, pets.MsgNotFound)
		})
	})
}
