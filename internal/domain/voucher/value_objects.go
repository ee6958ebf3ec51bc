package voucher

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
)

var ErrInvalidCode = errors.New("invalid voucher code format")

// Voucher codes are 16 character case-sensitive alphanumerics, assigned once
// at provisioning time and immutable afterwards.
const CodeLength = 16

var codeRegex = regexp.MustCompile(`^[a-zA-Z0-9]{16}$`)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type Code string

func NewCode(code string) (Code, error) {
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func GenerateCode() (Code, error) {
	buf := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return Code(""), err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return Code(buf), nil
}

func (c Code) String() string {
	return string(c)
}
