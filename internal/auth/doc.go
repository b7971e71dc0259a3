package auth

// Package auth verifies plaintext passwords against stored, self-describing hashes.
//
// Supported formats:
//   $argon2id$v=19$m=...,t=...,p=...$salt$digest  (also $argon2i$)
//   $2a$ / $2b$ / $2y$                            bcrypt
//   $6$ / $5$ / $1$                               sha512-, sha256-, md5-crypt
//
// Verification always fails closed: anything that cannot be parsed is a mismatch.
