package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Version = argon2.Version

	// Stored costs above these are refused rather than computed.
	maxArgon2Memory = 4 * 1024 * 1024 // KiB, 4 GiB
	maxArgon2Time   = 64
)

var errCostTooHigh = errors.New("cost above limit")

// Params are Argon2id cost parameters. Memory is in KiB.
type Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

func DefaultParams() Params {
	return Params{Memory: 64 * 1024, Time: 3, Threads: 2, SaltLen: 16, KeyLen: 32}
}

func (p Params) validate() error {
	switch {
	case p.Time < 1:
		return fmt.Errorf("argon2: time must be at least 1")
	case p.Threads < 1:
		return fmt.Errorf("argon2: threads must be at least 1")
	case p.Memory < 8*uint32(p.Threads):
		return fmt.Errorf("argon2: memory must be at least 8*threads KiB")
	case p.Memory > maxArgon2Memory:
		return fmt.Errorf("argon2: memory %w of %d KiB", errCostTooHigh, maxArgon2Memory)
	case p.Time > maxArgon2Time:
		return fmt.Errorf("argon2: time %w of %d", errCostTooHigh, maxArgon2Time)
	case p.SaltLen < 8:
		return fmt.Errorf("argon2: salt must be at least 8 bytes")
	case p.KeyLen < 4:
		return fmt.Errorf("argon2: key must be at least 4 bytes")
	}
	return nil
}

// HashPassword returns an Argon2id hash of password in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<digest>.
func HashPassword(password string, p Params) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

type argon2Hash struct {
	variant string
	params  Params
	salt    []byte
	key     []byte
}

func parseArgon2(hash string) (*argon2Hash, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: want 5 $-separated sections", ErrMalformedHash)
	}
	h := &argon2Hash{variant: parts[1]}
	switch h.variant {
	case "argon2id", "argon2i":
	case "argon2d":
		return nil, fmt.Errorf("%w: argon2d", ErrUnsupportedHash)
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrMalformedHash, h.variant)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: version %q", ErrMalformedHash, parts[2])
	}
	if fmt.Sprintf("v=%d", version) != parts[2] {
		return nil, fmt.Errorf("%w: version %q", ErrMalformedHash, parts[2])
	}
	if version != argon2Version {
		return nil, fmt.Errorf("%w: argon2 version %d", ErrUnsupportedHash, version)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.params.Memory, &h.params.Time, &threads); err != nil {
		return nil, fmt.Errorf("%w: parameters %q", ErrMalformedHash, parts[3])
	}
	if fmt.Sprintf("m=%d,t=%d,p=%d", h.params.Memory, h.params.Time, threads) != parts[3] {
		return nil, fmt.Errorf("%w: parameters %q", ErrMalformedHash, parts[3])
	}
	if threads > 255 {
		return nil, fmt.Errorf("%w: parallelism %d", ErrMalformedHash, threads)
	}
	h.params.Threads = uint8(threads)

	var err error
	if h.salt, err = base64.RawStdEncoding.Strict().DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if h.key, err = base64.RawStdEncoding.Strict().DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: digest: %v", ErrMalformedHash, err)
	}
	h.params.SaltLen = uint32(len(h.salt))
	h.params.KeyLen = uint32(len(h.key))
	if err := h.params.validate(); err != nil {
		if errors.Is(err, errCostTooHigh) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedHash, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return h, nil
}

func checkArgon2(password, hash string) error {
	h, err := parseArgon2(hash)
	if err != nil {
		return err
	}
	var key []byte
	if h.variant == "argon2id" {
		key = argon2.IDKey([]byte(password), h.salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	} else {
		key = argon2.Key([]byte(password), h.salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	}
	if subtle.ConstantTimeCompare(key, h.key) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
