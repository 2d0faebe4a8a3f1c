package main

import (
	"context"
	"encoding/json"

	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
)

// DataInitializer seeds the records a fresh database needs before the first
// request: the operator account and a starter template catalog.
type DataInitializer struct {
	UserService     *user.UserService
	TemplateService *template.TemplateService
}

func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.installAdminUser(ctx); err != nil {
		return err
	}
	return d.installDefaultTemplates(ctx)
}

func (d *DataInitializer) installAdminUser(ctx context.Context) error {
	email := environment_variables.EnvironmentVariables.SEED_ADMIN_EMAIL
	password := environment_variables.EnvironmentVariables.SEED_ADMIN_PASSWORD
	if email == "" || password == "" {
		return nil
	}
	existing, err := d.UserService.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	admin, err := d.UserService.RegisterUser(ctx, &user.User{
		Name:  "Administrator",
		Email: email,
		Role:  user.RoleAdmin,
		Plan:  user.PlanPro,
	}, password)
	if err != nil {
		return err
	}
	logger.GetLogger().Infof("seeded admin account %s", admin.ID)
	return nil
}

func (d *DataInitializer) installDefaultTemplates(ctx context.Context) error {
	count, err := d.TemplateService.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []*template.Template{
		{
			Name:         "Invoice QA",
			Description:  "Structural checks for inbound invoices",
			SourceFormat: "pdf",
			Rules:        json.RawMessage(`{"require_text_layer":true,"max_pages":20}`),
		},
		{
			Name:         "Contract to PDF",
			Description:  "Archive-grade PDF rendition of signed contracts",
			SourceFormat: "docx",
			TargetFormat: "pdf",
		},
		{
			Name:         "Report to Markdown",
			Description:  "Plain-text extraction for downstream indexing",
			SourceFormat: "docx",
			TargetFormat: "md",
		},
	}
	for _, t := range defaults {
		if _, err := d.TemplateService.Create(ctx, t); err != nil {
			return err
		}
	}
	logger.GetLogger().Infof("seeded %d default templates", len(defaults))
	return nil
}
