package pickup

import (
	"time"

	domain "krysselista-backend/internal/domain/pickup"
)

type CreateRequestInput struct {
	ChildID  string `json:"child_id" validate:"required,uuid"`
	ParentID string `json:"-"`
	// nil or "parent" means the parent collects the child
	PickupPersonID   *string `json:"pickup_person_id,omitempty"`
	EstimatedMinutes int     `json:"estimated_minutes" validate:"min=0,max=240"`
}

type ListInput struct {
	Status string `query:"status" validate:"required,oneof=pending approved rejected completed"`
	Limit  int    `query:"limit" validate:"min=0"`
	Order  string `query:"order" validate:"omitempty,oneof=newest oldest"`
}

const (
	ApprovalAuto  = "auto"
	ApprovalStaff = "staff"
)

type PickupDTO struct {
	ID                     string     `json:"id"`
	ChildID                string     `json:"child_id"`
	ChildName              string     `json:"child_name,omitempty"`
	ChildPhotoURL          string     `json:"child_photo_url,omitempty"`
	ParentID               string     `json:"parent_id"`
	ParentName             string     `json:"parent_name,omitempty"`
	ParentRequiresApproval *bool      `json:"parent_requires_approval,omitempty"`
	PickupPersonName       string     `json:"pickup_person_name"`
	PickupPersonID         *string    `json:"pickup_person_id,omitempty"`
	Status                 string     `json:"status"`
	ApprovalMode           string     `json:"approval_mode,omitempty"`
	RequestedAt            time.Time  `json:"requested_at"`
	EstimatedArrivalTime   *time.Time `json:"estimated_arrival_time,omitempty"`
	ApprovedAt             *time.Time `json:"approved_at,omitempty"`
	ApprovedBy             *string    `json:"approved_by,omitempty"`
	CompletedAt            *time.Time `json:"completed_at,omitempty"`
}

func toDTO(p *domain.PickupRequest) PickupDTO {
	d := PickupDTO{
		ID:                   p.ID,
		ChildID:              p.ChildID,
		ParentID:             p.ParentID,
		PickupPersonName:     p.PickupPersonName,
		PickupPersonID:       p.PickupPersonID,
		Status:               string(p.Status),
		RequestedAt:          p.RequestedAt,
		EstimatedArrivalTime: p.EstimatedArrivalTime,
		ApprovedAt:           p.ApprovedAt,
		ApprovedBy:           p.ApprovedBy,
		CompletedAt:          p.CompletedAt,
	}
	if p.ApprovedBy != nil {
		d.ApprovalMode = ApprovalStaff
		if p.AutoApproved() {
			d.ApprovalMode = ApprovalAuto
		}
	}
	if p.Child != nil {
		d.ChildName = p.Child.Name
		d.ChildPhotoURL = p.Child.PhotoURL
	}
	if p.Parent != nil {
		d.ParentName = p.Parent.FullName
		ra := p.Parent.RequiresApproval
		d.ParentRequiresApproval = &ra
	}
	return d
}

func toDTOs(in []domain.PickupRequest) []PickupDTO {
	out := make([]PickupDTO, 0, len(in))
	for i := range in {
		out = append(out, toDTO(&in[i]))
	}
	return out
}

// BoardView is the staff dashboard: the three working lists plus whether
// they are kept fresh by the change feed.
type BoardView struct {
	Pending     []PickupDTO `json:"pending"`
	Approved    []PickupDTO `json:"approved"`
	Completed   []PickupDTO `json:"completed"`
	Live        bool        `json:"live"`
	RefreshedAt time.Time   `json:"refreshed_at"`
}
