package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	companyIDPrefix   = "cmp_"
	userIDPrefix      = "usr_"
	positionIDPrefix  = "pos_"
	applicantIDPrefix = "apl_"
)

var idPattern = regexp.MustCompile(`^(cmp|usr|pos|apl)_[a-zA-Z0-9]{24}$`)

// NewCompanyID generates a new company ID with the "cmp_" prefix followed
// by 24 cryptographically random alphanumeric characters.
func NewCompanyID() string {
	return companyIDPrefix + randomAlphanumeric(idLength)
}

// NewUserID generates a new user ID with the "usr_" prefix.
func NewUserID() string {
	return userIDPrefix + randomAlphanumeric(idLength)
}

// NewPositionID generates a new position ID with the "pos_" prefix.
func NewPositionID() string {
	return positionIDPrefix + randomAlphanumeric(idLength)
}

// NewApplicantID generates a new applicant ID with the "apl_" prefix.
func NewApplicantID() string {
	return applicantIDPrefix + randomAlphanumeric(idLength)
}

// ValidateID checks whether the given string is a well-formed entity ID.
// Lookups with malformed IDs can be rejected before hitting the store.
func ValidateID(id string) bool {
	return idPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
