package dbschema

import (
	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(AuditEntry{})
}

type AuditEntry struct {
	BaseModel
	PublicID      string `gorm:"uniqueIndex;not null"`
	ActorPublicID string `gorm:"index"`
	Action        string `gorm:"index"`
	Target        string
	Detail        string
}

func NewSchemaAuditEntry(e *audit.Entry) *AuditEntry {
	return &AuditEntry{
		PublicID:      e.ID,
		ActorPublicID: e.ActorID,
		Action:        e.Action,
		Target:        e.Target,
		Detail:        e.Detail,
	}
}

func (e *AuditEntry) EtoD() *audit.Entry {
	return &audit.Entry{
		ID:        e.PublicID,
		ActorID:   e.ActorPublicID,
		Action:    e.Action,
		Target:    e.Target,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt.Unix(),
	}
}
