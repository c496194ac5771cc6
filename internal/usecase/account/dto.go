package account

import (
	"time"

	"github.com/google/uuid"

	domainAccount "github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
)

type UpdatePINRequest struct {
	PIN string `json:"pin" validate:"required,pin"`
}

type AccountResponse struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	OfficeID    *uuid.UUID `json:"office_id"`
	IsVerified  bool       `json:"is_verified"`
	HasRobotPIN bool       `json:"has_robot_pin"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToAccountResponse(a *domainAccount.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		OfficeID:    a.OfficeID,
		IsVerified:  a.IsVerified,
		HasRobotPIN: a.RobotPINHash != nil,
		CreatedAt:   a.CreatedAt,
	}
}
