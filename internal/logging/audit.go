package logging

import "time"

// CategoryAudit receives one structured line per submission lifecycle event.
const CategoryAudit Category = "audit"

// AuditEventType names a submission lifecycle event.
type AuditEventType string

const (
	AuditSubmitBegin   AuditEventType = "submit_begin"   // request serialized, trigger pending
	AuditSubmitAbort   AuditEventType = "submit_abort"   // validation failed, nothing sent
	AuditSubmitOutcome AuditEventType = "submit_outcome" // exchange settled, trigger restored
)

// AuditEvent is a single submission lifecycle record.
type AuditEvent struct {
	Type         AuditEventType
	SubmissionID string
	Outcome      string
	Duration     time.Duration
	Fields       map[string]interface{}
}

// Audit writes ev to the audit log.
func Audit(ev AuditEvent) {
	l := Get(CategoryAudit)
	if l.sugar == nil {
		return
	}
	kv := []interface{}{"event", string(ev.Type)}
	if ev.SubmissionID != "" {
		kv = append(kv, "submission", ev.SubmissionID)
	}
	if ev.Outcome != "" {
		kv = append(kv, "outcome", ev.Outcome)
	}
	if ev.Duration > 0 {
		kv = append(kv, "duration_ms", ev.Duration.Milliseconds())
	}
	for k, v := range ev.Fields {
		kv = append(kv, k, v)
	}
	l.sugar.Infow("audit", kv...)
}
