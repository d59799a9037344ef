package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

func TestNormalizeBrazilianNumber(t *testing.T) {
	n := PhoneNormalizer{Region: "BR", CountryCode: "55"}

	got, err := n.Normalize("(85) 99999-0000")
	require.NoError(t, err)
	assert.Equal(t, "5585999990000", got)
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	n := PhoneNormalizer{Region: "BR", CountryCode: "55"}

	_, err := n.Normalize("sem telefone")
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
}

func TestWhatsAppLinkEncoding(t *testing.T) {
	got := WhatsAppLink("5585999990000", "Olá Maria & cia\nR$ 10,00")

	assert.Equal(t, "https://wa.me/5585999990000?text=Ol%C3%A1%20Maria%20%26%20cia%0AR%24%2010%2C00", got)
}
