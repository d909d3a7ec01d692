package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
)

// RegisterRequest is the public registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Category string `json:"category,omitempty"`
}

// UpdateProfileRequest carries a partial self-profile update. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Category *string `json:"category,omitempty"`
}

// CreateAccountDTO is the persistence shape for a new account.
type CreateAccountDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Category     enums.AccountCategory
	IsStaff      bool
	IsSuperuser  bool
}

// ToModel converts the DTO into the GORM model.
func (dto CreateAccountDTO) ToModel() *models.Account {
	return &models.Account{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Category:     dto.Category,
		IsActive:     true,
		IsStaff:      dto.IsStaff,
		IsSuperuser:  dto.IsSuperuser,
	}
}

// AccountResponse is the serialized account. The password hash never
// leaves the service layer.
type AccountResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Category    enums.AccountCategory `json:"category"`
	IsActive    bool                  `json:"is_active"`
	IsStaff     bool                  `json:"is_staff"`
	IsSuperuser bool                  `json:"is_superuser"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewAccountResponse maps a model into its API representation.
func NewAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Name:        account.Name,
		Email:       account.Email,
		Category:    account.Category,
		IsActive:    account.IsActive,
		IsStaff:     account.IsStaff,
		IsSuperuser: account.IsSuperuser,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

// ListResponse is a cursor page of accounts.
type ListResponse struct {
	Accounts   []AccountResponse `json:"accounts"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
