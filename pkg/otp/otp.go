package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength длина одноразового кода
const CodeLength = 6

// Generate возвращает числовой одноразовый код из CodeLength цифр
func Generate() (string, error) {
	max := big.NewInt(10)
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("otp: generate digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
