package domain

import "time"

// Tenant описывает магазин — границу изоляции каталога.
type Tenant struct {
	ID            int64
	Name          string
	WebhookSecret string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
