package nlsd

import "github.com/sirupsen/logrus"

// TraceTo builds a WithTrace hook that writes each decode decision to
// logger as a logrus.Fields-tagged Debug entry, under the "nlsd" component
// field and an "event" field naming the decision (rollback,
// henceforth_declared, scope_matched, list_parsed, object_parsed).
// Grounded on vippsas-sqlcode's direct, no-wrapper-struct logrus usage —
// passing a *logrus.Logger straight into the call that needs it rather
// than defining a bespoke logging interface.
func TraceTo(logger *logrus.Logger) func(event string, fields map[string]any) {
	if logger == nil {
		return nil
	}
	entry := logger.WithField("component", "nlsd")
	return func(event string, fields map[string]any) {
		lf := make(logrus.Fields, len(fields)+1)
		for k, v := range fields {
			lf[k] = v
		}
		lf["event"] = event
		entry.WithFields(lf).Debug(event)
	}
}
