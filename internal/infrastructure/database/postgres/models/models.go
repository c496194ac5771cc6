package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel represents the database model for Account
type AccountModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName    string     `gorm:"type:varchar(50);not null"`
	LastName     string     `gorm:"type:varchar(50);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber  *string    `gorm:"type:varchar(20)"`
	OfficeID     *uuid.UUID `gorm:"type:uuid;index"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	RobotPINHash *string    `gorm:"type:varchar(255)"`
	IsVerified   bool       `gorm:"default:false;not null"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

// OfficeModel represents the database model for Office
type OfficeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Address   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (OfficeModel) TableName() string {
	return "offices"
}

// EmailVerificationModel represents the database model for EmailVerification
type EmailVerificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	CodeHash  string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Used      bool      `gorm:"default:false;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (EmailVerificationModel) TableName() string {
	return "email_verifications"
}

// PasswordResetModel represents the database model for PasswordReset
type PasswordResetModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Used      bool      `gorm:"default:false;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PasswordResetModel) TableName() string {
	return "password_resets"
}

// SessionModel represents the database model for a refresh-token session
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SessionModel) TableName() string {
	return "refresh_tokens"
}

// RobotStateModel is the singleton robot status row
type RobotStateModel struct {
	ID        uint      `gorm:"primary_key"`
	Status    string    `gorm:"type:varchar(20);not null;default:'available'"`
	Notes     *string   `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (RobotStateModel) TableName() string {
	return "robot_status"
}
