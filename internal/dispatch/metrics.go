package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var dispatchesOpened = promauto.NewCounter(prometheus.CounterOpts{
	Name: "crm_dispatches_opened_total",
	Help: "Total number of WhatsApp links handed to an opener",
})
