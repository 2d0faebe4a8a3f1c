package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Template{})
}

type Template struct {
	BaseModel
	PublicID     string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	Description  string
	SourceFormat string
	TargetFormat string
	Rules        datatypes.JSON
}

func NewSchemaTemplate(t *template.Template) *Template {
	return &Template{
		PublicID:     t.ID,
		Name:         t.Name,
		Description:  t.Description,
		SourceFormat: t.SourceFormat,
		TargetFormat: t.TargetFormat,
		Rules:        datatypes.JSON(t.Rules),
	}
}

func (t *Template) EtoD() *template.Template {
	return &template.Template{
		ID:           t.PublicID,
		Name:         t.Name,
		Description:  t.Description,
		SourceFormat: t.SourceFormat,
		TargetFormat: t.TargetFormat,
		Rules:        json.RawMessage(t.Rules),
		CreatedAt:    t.CreatedAt.Unix(),
		UpdatedAt:    t.UpdatedAt.Unix(),
	}
}
