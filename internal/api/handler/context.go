package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ovl11/club-payment/internal/api/middleware"
	"github.com/ovl11/club-payment/internal/core/domain"
)

// ctxUser returns the user injected by the auth middleware. Its absence means
// the route was wired without authentication.
func ctxUser(c echo.Context) (domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.User{}, domain.Unauthorized("missing authentication")
	}
	return u, nil
}

// bindJSON decodes the request body into dst whatever the Content-Type; POS
// terminals do not always send one. An empty body leaves dst untouched.
func bindJSON(c echo.Context, dst any) error {
	err := json.NewDecoder(c.Request().Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return domain.Validation("%s must be a %s", te.Field, jsonKind(te.Type.Kind().String()))
	}
	return domain.Validation("invalid payload")
}

func jsonKind(goKind string) string {
	switch {
	case goKind == "bool":
		return "boolean"
	case strings.HasPrefix(goKind, "int"), strings.HasPrefix(goKind, "uint"), strings.HasPrefix(goKind, "float"):
		return "number"
	default:
		return goKind
	}
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// optionalBool reads an optional JSON boolean. An absent field yields nil;
// null or any other non-boolean value is rejected.
func optionalBool(field string, raw json.RawMessage) (*bool, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, domain.Validation("%s must be a boolean", field)
	}
	return &b, nil
}
