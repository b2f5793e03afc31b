package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_Acceso(t *testing.T) {
	tok, err := Generate(secret, "u1", "admin", "pipeline-crm", 5)
	require.NoError(t, err)

	userID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "admin", role)

	_, _, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, "u1", "admin", "pipeline-crm", -1)
	require.NoError(t, err)
	_, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestInvitacion_NoSirveComoAcceso(t *testing.T) {
	tok, err := GenerateInvitation(secret, "inv-1", "eva@crm.test", "pipeline-crm", 60)
	require.NoError(t, err)

	_, _, err = Parse(secret, tok)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	id, email, err := ParseInvitation(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "inv-1", id)
	assert.Equal(t, "eva@crm.test", email)

	access, err := Generate(secret, "u1", "admin", "pipeline-crm", 5)
	require.NoError(t, err)
	_, _, err = ParseInvitation(secret, access)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "admin", "x", 5)
	assert.Error(t, err)
}
