package metrics

import "github.com/prometheus/client_golang/prometheus"

// Geocode call results.
const (
	ResultHit   = "hit"   // provider returned coordinates
	ResultMiss  = "miss"  // provider had no match
	ResultError = "error" // transport/parse failure
)

var GeocodeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "bouncer_geocode_requests_total",
	Help: "Outbound geocoding calls by provider and result.",
}, []string{"provider", "result"})

func init() {
	prometheus.MustRegister(GeocodeRequests)
}
