package models

import (
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodOther    PaymentMethod = "other"
)

type Payment struct {
	gorm.Model
	AppointmentID uint          `json:"appointment_id"`
	Amount        float64       `json:"amount" validate:"required,gt=0"`
	Method        PaymentMethod `json:"method" validate:"required,oneof=cash card transfer other"`
	Status        string        `json:"status" gorm:"default:completed"`
	TransactionID string        `json:"transaction_id"`
	Notes         string        `json:"notes"`
}
