package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username     string `gorm:"size:64;uniqueIndex;not null"  json:"username"`
	Email        string `gorm:"size:255;not null"             json:"email"`
	PasswordHash string `gorm:"not null"                      json:"-"`
	Role         string `gorm:"size:16;not null;default:USER" json:"role"`
	Auditable
}

type Address struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint   `gorm:"index;not null"           json:"user_id"`
	Address     string `gorm:"type:text;not null"       json:"address"`
	City        string `gorm:"size:128;not null"        json:"city"`
	Province    string `gorm:"size:128;not null"        json:"province"`
	PostalCode  string `gorm:"size:16;not null"         json:"postal_code"`
	PhoneNumber string `gorm:"size:32;not null"         json:"phone_number"`
}

type PaymentType string

const (
	PaymentBankTransfer PaymentType = "BANK_TRANSFER"
	PaymentCreditCard   PaymentType = "CREDIT_CARD"
	PaymentEWallet      PaymentType = "E_WALLET"
)

type Payment struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint        `gorm:"index;not null"           json:"user_id"`
	PaymentType   PaymentType `gorm:"size:32;not null"         json:"payment_type"`
	AccountNumber string      `gorm:"size:64;not null"         json:"account_number"`
	AccountName   string      `gorm:"size:128;not null"        json:"account_name"`
	Provider      string      `gorm:"size:64;not null"         json:"provider"`
	Expiry        *time.Time  `                                json:"expiry,omitempty"`
}
