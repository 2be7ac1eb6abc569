package monitoring

import (
	"github.com/rs/zerolog/log"
)

// StoreAlert reports a tenant store failure. Alerts are log entries for now.
func StoreAlert(op string, err error, labels map[string]string) {
	StoreErrors.WithLabelValues(op).Inc()

	fields := make(map[string]interface{}, len(labels)+1)
	for k, v := range labels {
		fields[k] = v
	}
	fields["op"] = op
	log.Error().
		Err(err).
		Fields(fields).
		Msg("ALERT: Tenant store failure")
}
