package checker

import (
	"strings"

	"github.com/rawblock/decipher-engine/pkg/models"
)

// commonPasswords is a small built-in corpus of frequently reused
// passwords, distinct from the larger user-supplied wordlists
// WordlistChecker consults. It is intentionally short: this checker
// exists to catch the cheap, common case fast, not to replace a real
// wordlist.
var commonPasswords = map[string]struct{}{
	"password": {}, "123456": {}, "123456789": {}, "qwerty": {},
	"letmein": {}, "admin": {}, "welcome": {}, "monkey": {},
	"dragon": {}, "iloveyou": {}, "sunshine": {}, "princess": {},
	"football": {}, "password1": {}, "abc123": {}, "trustno1": {},
}

// PasswordChecker flags a candidate as identified when it is an exact
// match (case-insensitive) for a known common password.
type PasswordChecker struct{}

func NewPasswordChecker() *PasswordChecker { return &PasswordChecker{} }

func (c *PasswordChecker) Name() string { return "Common Password Checker" }

func (c *PasswordChecker) CheckText(text string) models.CheckerResult {
	candidate := strings.ToLower(strings.TrimSpace(text))
	if _, ok := commonPasswords[candidate]; ok {
		return models.CheckerResult{
			IsIdentified: true,
			Text:         text,
			CheckerName:  c.Name(),
			Description:  "matches a commonly reused password",
		}
	}
	return notIdentified(c.Name())
}
