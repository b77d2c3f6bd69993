package util

import gonanoid "github.com/matoous/go-nanoid/v2"

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID returns a random record ID such as "order-V1StGXR8Z5jdHi6B"
func NewID(prefix string) (string, error) {
	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return "", err
	}

	return prefix + "-" + id, nil
}
