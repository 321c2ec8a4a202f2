package validation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/deppfellow/item-service/internal/errs"
	"github.com/deppfellow/item-service/internal/validation"
)

type samplePayload struct {
	Name *string `json:"name" validate:"required"`
	Size int     `json:"size" validate:"min=2"`
}

func (p *samplePayload) Validate() error {
	return validation.Struct(p)
}

type pathPayload struct {
	ID int `param:"id"`
}

func (p *pathPayload) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).MustInt("id", &p.ID).BindError()
}

func (p *pathPayload) Validate() error {
	return nil
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return validation.CustomValidationErrors{{Field: "slug", Message: "is taken"}}
}

func newContext(method, body string) echo.Context {
	req := httptest.NewRequest(method, "/samples", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return newEcho().NewContext(req, httptest.NewRecorder())
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.JSONSerializer = validation.JSONSerializer{}
	return e
}

func TestBindAndValidate(t *testing.T) {
	Convey("Given a payload with validator tags", t, func() {
		Convey("When the body is valid", func() {
			c := newContext(http.MethodPost, `{"name":"a","size":3}`)
			payload := &samplePayload{}
			err := validation.BindAndValidate(c, payload)

			Convey("Then it binds without error", func() {
				So(err, ShouldBeNil)
				So(*payload.Name, ShouldEqual, "a")
				So(payload.Size, ShouldEqual, 3)
			})
		})

		Convey("When a required field is missing", func() {
			c := newContext(http.MethodPost, `{"size":3}`)
			err := validation.BindAndValidate(c, &samplePayload{})

			Convey("Then a 422 with the json field name is returned", func() {
				httpErr, ok := err.(*errs.HTTPError)
				So(ok, ShouldBeTrue)
				So(httpErr.Status, ShouldEqual, http.StatusUnprocessableEntity)
				So(httpErr.Errors, ShouldResemble, []errs.FieldError{{Field: "name", Error: "is required"}})
			})
		})

		Convey("When a numeric rule fails", func() {
			c := newContext(http.MethodPost, `{"name":"a","size":1}`)
			err := validation.BindAndValidate(c, &samplePayload{})

			Convey("Then the message names the bound", func() {
				httpErr := err.(*errs.HTTPError)
				So(httpErr.Errors[0].Field, ShouldEqual, "size")
				So(httpErr.Errors[0].Error, ShouldEqual, "must be at least 2")
			})
		})

		Convey("When a field has the wrong type", func() {
			c := newContext(http.MethodPost, `{"name":"a","size":"big"}`)
			err := validation.BindAndValidate(c, &samplePayload{})

			Convey("Then binding fails with a 422 naming the field", func() {
				httpErr := err.(*errs.HTTPError)
				So(httpErr.Status, ShouldEqual, http.StatusUnprocessableEntity)
				So(httpErr.Errors, ShouldResemble, []errs.FieldError{{Field: "size", Error: "must be of type int"}})
			})
		})

		Convey("When the body is not JSON", func() {
			c := newContext(http.MethodPost, `{"name":`)
			err := validation.BindAndValidate(c, &samplePayload{})

			Convey("Then binding fails with a 422 on the body", func() {
				httpErr := err.(*errs.HTTPError)
				So(httpErr.Status, ShouldEqual, http.StatusUnprocessableEntity)
				So(len(httpErr.Errors), ShouldEqual, 1)
				So(httpErr.Errors[0].Field, ShouldEqual, "body")
			})
		})

		Convey("When the body carries data after the JSON value", func() {
			c := newContext(http.MethodPost, `{"name":"a","size":3} trailing`)
			err := validation.BindAndValidate(c, &samplePayload{})

			Convey("Then binding fails with a 422 on the body", func() {
				httpErr, ok := err.(*errs.HTTPError)
				So(ok, ShouldBeTrue)
				So(httpErr.Status, ShouldEqual, http.StatusUnprocessableEntity)
				So(httpErr.Errors[0].Field, ShouldEqual, "body")
			})
		})

		Convey("When the body has no Content-Type", func() {
			req := httptest.NewRequest(http.MethodPost, "/samples", strings.NewReader(`{"name":"a","size":3}`))
			c := newEcho().NewContext(req, httptest.NewRecorder())
			payload := &samplePayload{}
			err := validation.BindAndValidate(c, payload)

			Convey("Then it is decoded as JSON", func() {
				So(err, ShouldBeNil)
				So(*payload.Name, ShouldEqual, "a")
			})
		})
	})

	Convey("Given a payload that binds its own path params", t, func() {
		c := newContext(http.MethodGet, "")

		Convey("When the param is an integer", func() {
			c.SetParamNames("id")
			c.SetParamValues("7")
			payload := &pathPayload{}
			err := validation.BindAndValidate(c, payload)

			Convey("Then it is bound", func() {
				So(err, ShouldBeNil)
				So(payload.ID, ShouldEqual, 7)
			})
		})

		Convey("When the param does not convert", func() {
			c.SetParamNames("id")
			c.SetParamValues("abc")
			err := validation.BindAndValidate(c, &pathPayload{})

			Convey("Then the field is reported", func() {
				httpErr := err.(*errs.HTTPError)
				So(httpErr.Status, ShouldEqual, http.StatusUnprocessableEntity)
				So(httpErr.Errors, ShouldResemble, []errs.FieldError{{Field: "id", Error: "has an invalid value"}})
			})
		})
	})

	Convey("Given a payload with custom validation", t, func() {
		c := newContext(http.MethodPost, `{}`)
		err := validation.BindAndValidate(c, &customPayload{})

		Convey("Then custom errors become field errors", func() {
			httpErr := err.(*errs.HTTPError)
			So(httpErr.Errors, ShouldResemble, []errs.FieldError{{Field: "slug", Error: "is taken"}})
		})
	})
}
