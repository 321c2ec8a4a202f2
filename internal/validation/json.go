package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// errTrailingData is returned when a body holds more than one JSON value.
var errTrailingData = errors.New("unexpected data after the JSON value")

// JSONSerializer is Echo's JSON serializer with a stricter decoder: the body
// must hold exactly one JSON value, so `{"id":1} trailing` is rejected
// instead of silently binding the first value.
//
// Decode errors keep Echo's shape (a 400 *echo.HTTPError wrapping the json
// error) so bindError can still find *json.UnmarshalTypeError underneath.
//
//	e := echo.New()
//	e.JSONSerializer = validation.JSONSerializer{}
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

// Deserialize decodes the request body into i.
func (s JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)

	err := dec.Decode(i)
	if err == nil {
		if _, tokenErr := dec.Token(); tokenErr != io.EOF {
			err = errTrailingData
		}
	}
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
			"Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v",
			typeErr.Type, typeErr.Value, typeErr.Field, typeErr.Offset,
		)).SetInternal(err)

	case errors.As(err, &syntaxErr):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
			"Syntax error: offset=%v, error=%v", syntaxErr.Offset, syntaxErr.Error(),
		)).SetInternal(err)

	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
}
