package dto

import "time"

type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Price        int64  `json:"price" binding:"required,gt=0"`
	DurationDays int    `json:"duration_days" binding:"required,gt=0"`
	DataLimitGB  int    `json:"data_limit_gb" binding:"gte=0"`
}

type UpdatePlanRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Price        *int64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	DurationDays *int    `json:"duration_days,omitempty" binding:"omitempty,gt=0"`
	DataLimitGB  *int    `json:"data_limit_gb,omitempty" binding:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type PlanResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Price        int64     `json:"price"`
	Currency     string    `json:"currency"`
	DurationDays int       `json:"duration_days"`
	DataLimitGB  int       `json:"data_limit_gb"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
