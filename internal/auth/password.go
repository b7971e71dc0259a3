package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GehirnInc/crypt"
	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/GehirnInc/crypt/sha256_crypt"
	"github.com/GehirnInc/crypt/sha512_crypt"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLocked         = errors.New("user is locked")
	ErrMalformedHash      = errors.New("malformed password hash")
	ErrUnsupportedHash    = errors.New("unsupported password hash")
)

// Verify reports whether password matches storedHash. It never panics and never
// returns true for a hash it cannot parse.
func Verify(password, storedHash string) bool {
	return Check(password, storedHash) == nil
}

// Check is Verify with the reason for a failed match. A nil error means the
// password matched.
func Check(password, storedHash string) error {
	switch {
	case storedHash == "":
		return ErrMalformedHash
	case strings.HasPrefix(storedHash, "!") || strings.HasPrefix(storedHash, "*"):
		return ErrUserLocked
	case strings.HasPrefix(storedHash, "$argon2"):
		return checkArgon2(password, storedHash)
	case strings.HasPrefix(storedHash, "$2a$"),
		strings.HasPrefix(storedHash, "$2b$"),
		strings.HasPrefix(storedHash, "$2y$"):
		return checkBcrypt(password, storedHash)
	case strings.HasPrefix(storedHash, "$6$"):
		if err := checkRounds(storedHash); err != nil {
			return err
		}
		return checkCrypt(sha512_crypt.New(), password, storedHash)
	case strings.HasPrefix(storedHash, "$5$"):
		if err := checkRounds(storedHash); err != nil {
			return err
		}
		return checkCrypt(sha256_crypt.New(), password, storedHash)
	case strings.HasPrefix(storedHash, "$1$"):
		return checkCrypt(md5_crypt.New(), password, storedHash)
	case strings.HasPrefix(storedHash, "$y$"), strings.HasPrefix(storedHash, "$7$"):
		// yescrypt and scrypt-crypt have no verifier here.
		return ErrUnsupportedHash
	case strings.HasPrefix(storedHash, "$"):
		return ErrUnsupportedHash
	}
	return ErrMalformedHash
}

// Stored costs above these are refused rather than computed.
const (
	maxBcryptCost  = 16
	maxCryptRounds = 1_000_000
)

func checkBcrypt(password, hash string) error {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if cost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost %d above %d", ErrUnsupportedHash, cost, maxBcryptCost)
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

// checkRounds bounds the optional "rounds=N$" section of a sha-crypt hash.
func checkRounds(hash string) error {
	rest := hash[len("$6$"):]
	if !strings.HasPrefix(rest, "rounds=") {
		return nil
	}
	field, _, ok := strings.Cut(strings.TrimPrefix(rest, "rounds="), "$")
	if !ok {
		return fmt.Errorf("%w: rounds section not terminated", ErrMalformedHash)
	}
	n, err := strconv.ParseUint(field, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return fmt.Errorf("%w: rounds %s", ErrUnsupportedHash, field)
	case err != nil:
		return fmt.Errorf("%w: rounds %q", ErrMalformedHash, field)
	case n > maxCryptRounds:
		return fmt.Errorf("%w: rounds %d above %d", ErrUnsupportedHash, n, maxCryptRounds)
	}
	return nil
}

func checkCrypt(c crypt.Crypter, password, hash string) error {
	err := c.Verify(hash, []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypt.ErrKeyMismatch):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

func HumanAuthError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, ErrUserLocked):
		return "This account is locked."
	case errors.Is(err, ErrUnsupportedHash):
		return "The stored password hash uses an unsupported format."
	case errors.Is(err, ErrMalformedHash):
		return "The stored password hash is malformed."
	default:
		return fmt.Sprintf("Authentication failed: %v", err)
	}
}
