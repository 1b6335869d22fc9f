package authorized

import "time"

type AddInput struct {
	ChildID      string  `json:"-"`
	Name         string  `json:"name" validate:"required,personname"`
	Relationship string  `json:"relationship" validate:"required,min=2,max=50"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,phone"`
	ConsentGiven bool    `json:"consent_given"`
}

type EntryDTO struct {
	ID           string     `json:"id"`
	ChildID      string     `json:"child_id"`
	Name         string     `json:"name"`
	Relationship string     `json:"relationship"`
	Phone        *string    `json:"phone,omitempty"`
	ConsentGiven bool       `json:"consent_given"`
	ConsentDate  *time.Time `json:"consent_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
