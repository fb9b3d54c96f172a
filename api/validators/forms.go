// Package validators parses and validates the submitted forms and query
// parameters before any service sees them.
package validators

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/chemstock/pkg/enums"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
)

var validate = validator.New()

// AddProductForm is the payload of POST /add.
type AddProductForm struct {
	Name      string `validate:"required"`
	CASNumber string `validate:"required"`
	Unit      string `validate:"required"`
}

// EditProductForm is the payload of POST /edit/{productID}. The CAS number
// is immutable and deliberately absent.
type EditProductForm struct {
	Name string `validate:"required"`
	Unit string `validate:"required"`
}

// StockForm is the payload of POST /update-stock/{productID}.
type StockForm struct {
	Action   enums.MovementAction
	Quantity float64
}

// LoginForm is the payload of POST /login.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// ParseAddProductForm reads and validates the add-product submission.
func ParseAddProductForm(r *http.Request) (*AddProductForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form := &AddProductForm{
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		CASNumber: strings.TrimSpace(r.PostFormValue("cas")),
		Unit:      strings.TrimSpace(r.PostFormValue("unit")),
	}
	if err := validate.Struct(form); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "All fields are required!")
	}
	return form, nil
}

// ParseEditProductForm reads and validates the edit submission.
func ParseEditProductForm(r *http.Request) (*EditProductForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form := &EditProductForm{
		Name: strings.TrimSpace(r.PostFormValue("name")),
		Unit: strings.TrimSpace(r.PostFormValue("unit")),
	}
	if err := validate.Struct(form); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "All fields are required!")
	}
	return form, nil
}

// ParseStockForm reads the stock submission. Unparseable quantities carry
// the same user-facing message as non-positive ones.
func ParseStockForm(r *http.Request) (*StockForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}

	action, err := enums.ParseMovementAction(strings.TrimSpace(r.PostFormValue("action")))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown stock action")
	}

	raw := strings.TrimSpace(r.PostFormValue("quantity"))
	quantity, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be positive!")
	}

	return &StockForm{Action: action, Quantity: quantity}, nil
}

// ParseLoginForm reads the login submission.
func ParseLoginForm(r *http.Request) (*LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form := &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Username and password are required!")
	}
	return form, nil
}
