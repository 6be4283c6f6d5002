// SPDX-License-Identifier: GPL-3.0-only

package crypto

type Crypto struct {
	ArgonTime    uint32
	ArgonMemory  uint32
	ArgonThreads uint8
	ArgonKeyLen  uint32
	ArgonSaltLen uint32
}

// GeneratedKey is a freshly minted API key. Secret is only ever held in
// memory here and in the login response; storage gets HashedSecret.
type GeneratedKey struct {
	Prefix       string
	Secret       string
	HashedSecret string
}
