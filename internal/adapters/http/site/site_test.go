package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given the docs routes", t, func() {
		ctx := context.Background()
		router := chi.NewRouter()

		Convey("When registering them", func() {
			Register(ctx, router)

			Convey("Then /docs redirects to the directory", func() {
				req := httptest.NewRequest("GET", "/docs", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMovedPermanently)
				So(w.Header().Get("Location"), ShouldEqual, "/docs/")
			})

			Convey("And /docs/ serves the index page", func() {
				req := httptest.NewRequest("GET", "/docs/", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "OfferLens API")
			})

			Convey("And /docs/index.html serves the same page", func() {
				req := httptest.NewRequest("GET", "/docs/index.html", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				// FileServer redirects index.html to the directory.
				So(w.Code, ShouldBeIn, []int{http.StatusOK, http.StatusMovedPermanently})
			})

			Convey("And the root path stays unclaimed", func() {
				req := httptest.NewRequest("GET", "/", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSiteHandlerWithNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		ctx := context.Background()

		Convey("When registering the docs routes", func() {
			Convey("Then it should panic", func() {
				So(func() {
					Register(ctx, nil)
				}, ShouldPanic)
			})
		})
	})
}
