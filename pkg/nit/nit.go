// Package nit valida el NIT colombiano de proveedores persona jurídica.
package nit

import (
	"errors"
	"fmt"
)

// ErrInvalid NIT mal formado o con dígito de verificación incorrecto.
var ErrInvalid = errors.New("nit inválido")

// Pesos del módulo 11 de la DIAN para los 9 dígitos base, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// CheckDigit calcula el dígito de verificación de una base de 9 dígitos.
func CheckDigit(base string) (byte, error) {
	digits := onlyDigits(base)
	if len(digits) != 9 {
		return 0, fmt.Errorf("%w: la base debe tener 9 dígitos, tiene %d", ErrInvalid, len(digits))
	}
	return checkDigit(digits), nil
}

// Normalize valida el NIT ("900123456-7", "900.123.456-7" o "9001234567") y lo devuelve
// en la forma canónica base-dígito.
func Normalize(raw string) (string, error) {
	digits := onlyDigits(raw)
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: se esperan 9 dígitos más el de verificación, hay %d", ErrInvalid, len(digits))
	}
	want := checkDigit(digits[:9])
	if digits[9] != want {
		return "", fmt.Errorf("%w: dígito de verificación %c, se esperaba %c", ErrInvalid, digits[9], want)
	}
	return string(digits[:9]) + "-" + string(digits[9]), nil
}

func checkDigit(base []byte) byte {
	sum := 0
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return byte('0' + r)
	}
	return byte('0' + 11 - r)
}

func onlyDigits(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}
