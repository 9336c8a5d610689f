package validators

import (
	"net/http"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a CustomValidator with the "username" tag registered
func NewValidator() *CustomValidator {
	v := validator.New()
	// only fails for a nil func or a reserved tag name
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return models.ValidUsername(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate validates a bound request struct
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
