package auth

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

const (
	MsgConfirmPassword    = "Please confirm your new password."
	MsgCurrentPassword    = "Current password is incorrect."
	MsgPasswordLength     = "New password must be at least 8 characters long."
	MsgPasswordDigit      = "New password must contain at least one digit."
	MsgPasswordLetter     = "New password must contain at least one letter."
	MsgPasswordUpper      = "New password must contain at least one uppercase letter."
	MsgPasswordLower      = "New password must contain at least one lowercase letter."
	MsgPasswordsDontMatch = "New passwords do not match."
)

// ComplexityError returns the message of the first rule pw breaks, checked
// in a fixed order, or "" when pw is acceptable.
func ComplexityError(pw string) string {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return MsgPasswordLength
	}
	var digit, letter, upper, lower bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLetter(r):
			letter = true
			upper = upper || unicode.IsUpper(r)
			lower = lower || unicode.IsLower(r)
		}
	}
	switch {
	case !digit:
		return MsgPasswordDigit
	case !letter:
		return MsgPasswordLetter
	case !upper:
		return MsgPasswordUpper
	case !lower:
		return MsgPasswordLower
	}
	return ""
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pw string) bool {
	if hash == "" || pw == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
