package dto

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64                `json:"id"`
	UserID    *uuid.UUID           `json:"userId,omitempty"`
	User      *UserSummary         `json:"user,omitempty"`
	Action    string               `json:"action"`
	Metadata  entity.AuditMetadata `json:"metadata"`
	CreatedAt time.Time            `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
