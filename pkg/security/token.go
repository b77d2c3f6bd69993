package security

import "bitwise74/shop-api/pkg/util"

const opaqueTokenSize = 32

// NewOpaqueToken returns a random single use token for email verification
// and password resets
func NewOpaqueToken() (string, error) {
	return util.GenerateToken(opaqueTokenSize)
}
