// Package adaptive provides adaptive encryption for FerroDB.
//
// This package implements a cipher abstraction that automatically
// selects the best available encryption algorithm based on hardware
// capabilities and security requirements.
//
// Supported Algorithms:
//
//   - AES-GCM: Chosen by New on amd64 and arm64
//   - ChaCha20-Poly1305: Chosen by New on every other GOARCH
//
// Features:
//
//   - Automatic Selection: New picks the algorithm from runtime.GOARCH; it
//     does not probe CPU feature flags
//   - AEAD: Authenticated encryption with associated data
//   - Raw Keys: Callers supply the key bytes directly; the package does no
//     password-based key derivation
//   - Thread Safety: All cipher operations are thread-safe
//
// Usage:
//
//	cipher, err := adaptive.New(key)
//	encrypted, err := cipher.Encrypt(plaintext, aad)
//	plaintext, err := cipher.Decrypt(encrypted, aad)
//
package adaptive
