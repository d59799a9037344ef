package messaging

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

// PhoneNormalizer turns whatever the front desk typed into the digits wa.me expects.
type PhoneNormalizer struct {
	Region      string
	CountryCode string
}

// Normalize tries the number as national to Region, then as already carrying a
// country code, and finally prefixes CountryCode to the raw digits.
func (n PhoneNormalizer) Normalize(phone string) (string, error) {
	digits := onlyDigits(phone)
	if digits == "" {
		return "", httperr.ErrBusiness("invalid_phone")
	}

	if p, err := phonenumbers.Parse(digits, n.Region); err == nil && phonenumbers.IsValidNumber(p) {
		return strings.TrimPrefix(phonenumbers.Format(p, phonenumbers.E164), "+"), nil
	}

	if p, err := phonenumbers.Parse("+"+digits, ""); err == nil && phonenumbers.IsValidNumber(p) {
		return strings.TrimPrefix(phonenumbers.Format(p, phonenumbers.E164), "+"), nil
	}

	return n.CountryCode + digits, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink encodes text the way encodeURIComponent does (spaces as %20).
func WhatsAppLink(digits, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + escaped
}
