package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// El código de producción asume estas restricciones de unicidad: el índice
// sobre customers.email convierte la carrera register-register en EMAIL_EXISTS
// y login_username no puede repetirse entre partners cuando no está vacío.
func TestSchema_DeclaraIndicesUnicos(t *testing.T) {
	assert.Contains(t, schema,
		"CREATE UNIQUE INDEX IF NOT EXISTS customers_email_key ON customers (email)")

	assert.Contains(t, schema,
		"CREATE UNIQUE INDEX IF NOT EXISTS partners_login_username_key")
	assert.Contains(t, schema, "WHERE login_username <> ''",
		"el índice debe ser parcial para no chocar con partners legacy sin username")
}

// Todo índice y tabla del seed debe ser idempotente: el comando se puede
// correr varias veces contra la misma base.
func TestSchema_EsIdempotente(t *testing.T) {
	for _, stmt := range strings.Split(schema, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "--") {
				lines = append(lines, line)
			}
		}
		stmt = strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt == "" {
			continue
		}
		assert.Contains(t, stmt, "IF NOT EXISTS", "sentencia no idempotente: %s", stmt)
	}
}
