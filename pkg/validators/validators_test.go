package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Register()
}

func TestEmailValidator(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"a@x.com", nil},
		{"first.last+tag@shop.example.org", nil},
		{"", ErrEmailEmpty},
		{"not-an-email", ErrEmailInvalid},
		{"a@x", ErrEmailInvalid},
		{"Ann <a@x.com>", ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.ErrorIs(t, EmailValidator(tt.in), tt.want)
		})
	}
}

func TestPasswordValidator(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"Abcdef12", nil},
		{"", ErrPasswordEmpty},
		{"Ab1", ErrPasswordTooShort},
		{"abcdefg1", ErrPasswordNoUpper},
		{"ABCDEFG1", ErrPasswordNoLower},
		{"Abcdefgh", ErrPasswordNoNumber},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.ErrorIs(t, PasswordValidator(tt.in), tt.want)
		})
	}

	assert.NoError(t, PasswordValidator("Aa1"+strings.Repeat("x", MaxPasswordBytes-3)))
	assert.ErrorIs(t, PasswordValidator("Aa1"+strings.Repeat("x", MaxPasswordBytes-2)), ErrPasswordTooLong)
	// Multi-byte runes count by their encoded size
	assert.ErrorIs(t, PasswordValidator("Aa1"+strings.Repeat("é", 35)), ErrPasswordTooLong)
}

type signUp struct {
	Email           string `json:"email" binding:"required,mail"`
	Password        string `json:"password" binding:"required,password"`
	ConfirmPassword string `json:"confirmPassword" binding:"omitempty,eqfield=Password"`
	Name            string `json:"name" binding:"omitempty,min=2"`
}

type item struct {
	Price      decimal.Decimal `json:"price" binding:"gt=0"`
	PostalCode string          `json:"postalCode" binding:"min=3"`
	Method     string          `json:"paymentMethod" binding:"oneof=credit_card paypal"`
	Image      string          `json:"image" binding:"url"`
}

func validate(obj any) string {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return ""
	}
	return Message(err)
}

func TestMessage(t *testing.T) {
	ok := signUp{Email: "a@x.com", Password: "Abcdef12", ConfirmPassword: "Abcdef12", Name: "Ann"}
	require.Empty(t, validate(&ok))

	tests := []struct {
		name string
		obj  any
		want string
	}{
		{"missing email", &signUp{Password: "Abcdef12"}, "Email is required"},
		{"bad email", &signUp{Email: "nope", Password: "Abcdef12"}, "Invalid email address"},
		{"weak password", &signUp{Email: "a@x.com", Password: "abcdefgh"}, "Password must contain at least one uppercase letter"},
		{"mismatch", &signUp{Email: "a@x.com", Password: "Abcdef12", ConfirmPassword: "Abcdef13"}, "Passwords don't match"},
		{"short name", &signUp{Email: "a@x.com", Password: "Abcdef12", Name: "A"}, "Name must be at least 2 characters"},
		{"zero price", &item{PostalCode: "123", Method: "paypal", Image: "https://x.com/a.png"}, "Price must be positive"},
		{"postal code", &item{Price: decimal.NewFromInt(1), PostalCode: "1", Method: "paypal", Image: "https://x.com/a.png"}, "Postal code must be at least 3 characters"},
		{"payment", &item{Price: decimal.NewFromInt(1), PostalCode: "123", Method: "cash", Image: "https://x.com/a.png"}, "Payment method must be one of: credit_card, paypal"},
		{"image", &item{Price: decimal.NewFromInt(1), PostalCode: "123", Method: "paypal", Image: "nope"}, "Invalid image URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate(tt.obj))
		})
	}
}

func TestMessageNonValidationError(t *testing.T) {
	assert.Equal(t, "Invalid request body", Message(errors.New("unexpected EOF")))
}
