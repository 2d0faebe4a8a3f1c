package dbschema

import (
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

type User struct {
	BaseModel
	PublicID     string `gorm:"uniqueIndex;not null"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string
	Plan         string
	Guest        bool
	Enabled      bool
}

func NewSchemaUser(u *user.User, passwordHash string) *User {
	return &User{
		PublicID:     u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: passwordHash,
		Role:         string(u.Role),
		Plan:         u.Plan,
		Guest:        u.Guest,
		Enabled:      u.Enabled,
	}
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:        u.PublicID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      user.Role(u.Role),
		Plan:      u.Plan,
		Guest:     u.Guest,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt.Unix(),
	}
}
