package export

import (
	"strings"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

// CSV wraps every value in double quotes without escaping embedded quotes,
// which is the layout the clinic spreadsheets were built around.
// encoding/csv would escape them, so the rows are written by hand.
func CSV(leads []models.Lead) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Headers, ","))
	b.WriteByte('\n')

	for _, l := range leads {
		for i, v := range row(l) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(v)
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
