// Package textutil normaliza texto de entrada antes de persistirlo.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean recorta espacios y normaliza a NFC, de modo que "Pérez" escrito con
// acento combinado y precompuesto se almacene igual.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// BlankToNil devuelve nil si s es nil, vacío o solo espacios; si no, el valor limpio.
func BlankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := Clean(*s)
	if v == "" {
		return nil
	}
	return &v
}

// OrDefault devuelve el valor limpio de s, o def si queda vacío.
func OrDefault(s *string, def string) string {
	if v := BlankToNil(s); v != nil {
		return *v
	}
	return def
}
