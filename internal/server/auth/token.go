// Package auth implements session tokens and password hashing.
//
// Tokens are opaque lookup keys, not signed claims: a random hex prefix
// followed by the user id, e.g. "9f2d…c3a5-42". Resolving one costs a single
// user lookup. There is no expiry.
package auth

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkarpovs/epitrello/internal/common"
)

const tokenRandBytes = 32

// GenerateToken mints a session token for the given user.
func GenerateToken(userID int64) (string, error) {
	prefix, err := common.MakeRandHexString(tokenRandBytes)
	if err != nil {
		return "", err
	}
	return prefix + "-" + strconv.FormatInt(userID, 10), nil
}

// UserIDFromToken extracts the user id from a token. The id is the segment
// after the last separator, so a random prefix containing '-' cannot shift
// the split. Returns common.ErrInvalidToken for anything malformed.
func UserIDFromToken(token string) (int64, error) {
	i := strings.LastIndex(token, "-")
	if i < 0 || i == len(token)-1 {
		return 0, common.ErrInvalidToken
	}
	id, err := strconv.ParseInt(token[i+1:], 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
