package internal

import (
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/security"
)

type Deps struct {
	Store    *store.Store
	Hasher   *security.Hasher
	Sessions *security.Sessions
	Mailer   *service.Mailer
	// Images is nil when image uploads are disabled
	Images *service.ImageStore

	// PublicURL is where the storefront is served, used in email links
	PublicURL     string
	SecureCookies bool
	// MaxImageSize is in bytes
	MaxImageSize int64
}
