package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"Agendado", StatusScheduled},
		{"sem interesse", StatusNotInterested},
		{"  FECHADO ", StatusClosed},
		{"Compareceu", StatusAttended},
		{"Faltou", StatusNoShow},
		{"Remarcado", StatusRescheduled},
		{"Finalizado", StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := ParseStatus("Cancelado")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = ParseStatus("")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestOpenAppointmentStatuses(t *testing.T) {
	open := OpenAppointmentStatuses()
	require.Len(t, open, 2)
	assert.Equal(t, []Status{StatusScheduled, StatusRescheduled}, open)

	open[0] = "mutated"
	assert.Equal(t, StatusScheduled, OpenAppointmentStatuses()[0])
}

func TestCanonicalFunnel(t *testing.T) {
	assert.True(t, IsCanonicalTransition(StatusScheduled, StatusAttended))
	assert.True(t, IsCanonicalTransition(StatusRescheduled, StatusAttended))
	assert.True(t, IsCanonicalTransition(StatusAttended, StatusClosed))
	assert.True(t, IsCanonicalTransition(StatusAttended, StatusNotInterested))

	assert.False(t, IsCanonicalTransition(StatusClosed, StatusScheduled))
	assert.False(t, IsCanonicalTransition(StatusNotInterested, StatusClosed))

	assert.ElementsMatch(t, []Status{StatusClosed, StatusNotInterested}, CanonicalNext(StatusAttended))
	assert.Empty(t, CanonicalNext(StatusNotInterested))
}

func TestIsOpenAppointment(t *testing.T) {
	assert.True(t, StatusScheduled.IsOpenAppointment())
	assert.True(t, StatusRescheduled.IsOpenAppointment())
	assert.False(t, StatusAttended.IsOpenAppointment())
	assert.False(t, StatusClosed.IsOpenAppointment())
}
