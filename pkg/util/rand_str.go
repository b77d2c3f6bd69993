// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"math/rand"
	"sync"
	"time"
	"unsafe"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

var (
	src   = rand.NewSource(time.Now().UnixNano())
	srcMu sync.Mutex
)

// RandStr returns a non-cryptographic random string of n letters. Good for
// request IDs and log correlation, never for secrets
func RandStr(n int) string {
	srcMu.Lock()
	defer srcMu.Unlock()

	b := make([]byte, n)
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(charset) {
			b[i] = charset[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
