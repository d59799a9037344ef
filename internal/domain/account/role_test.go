package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleReception, r)

	r, err = ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("dentista")
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@clinica.com", NormalizeEmail("  Ana@Clinica.COM "))
}
