package models

import (
	"time"

	"github.com/danielhkuo/dateadvisor/ranking"
)

// Event status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Ranking method constants
const (
	MethodMultiCriterion = "multi-criterion"
)

// Request types

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	CreatorName string `json:"creator_name" validate:"required,max=100"`
}

type AddOptionRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type AddRecurringOptionsRequest struct {
	// Rule is an RFC 5545 recurrence rule body, e.g. "FREQ=WEEKLY;BYDAY=SA;COUNT=6".
	Rule    string `json:"rule" validate:"required"`
	StartOn string `json:"start_on" validate:"required,datetime=2006-01-02"`
}

type ClaimRespondentRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type SelectionInput struct {
	OptionID   string `json:"option_id" validate:"required"`
	Preference int    `json:"preference"`
	Uncertain  bool   `json:"uncertain"`
}

type SubmitResponseRequest struct {
	Selections []SelectionInput `json:"selections" validate:"required,min=1,dive"`
}

type RegisterIdentityRequest struct {
	Platform string `json:"platform" validate:"required,oneof=ios macos android web"`
}

// Response types

type CreateEventResponse struct {
	EventID  string `json:"event_id"`
	AdminKey string `json:"admin_key"`
}

type AddOptionResponse struct {
	OptionID string `json:"option_id"`
}

type AddRecurringOptionsResponse struct {
	OptionIDs []string `json:"option_ids"`
	Dates     []string `json:"dates"`
}

type PublishEventResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type ClaimRespondentResponse struct {
	RespondentID    string `json:"respondent_id"`
	RespondentToken string `json:"respondent_token"`
	IsNew           bool   `json:"is_new"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Message    string `json:"message"`
}

type CloseEventResponse struct {
	ClosedAt time.Time      `json:"closed_at"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

type EventPreviewResponse struct {
	Title         string `json:"title"`
	Status        string `json:"status"`
	OptionCount   int    `json:"option_count"`
	ResponseCount int    `json:"response_count"`
	LastActivity  string `json:"last_activity,omitempty"`
}

type RegisterIdentityResponse struct {
	IdentityID string `json:"identity_id"`
	IsNew      bool   `json:"is_new"`
}

// Domain types

type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorName     string     `json:"creator_name"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	ShareSlug       *string    `json:"share_slug,omitempty"`
	ClosesAt        *time.Time `json:"closes_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	FinalSnapshotID *string    `json:"final_snapshot_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Option struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Date    string `json:"date"` // ISO-8601 calendar date, no time component
}

type EventWithOptions struct {
	Event   Event    `json:"event"`
	Options []Option `json:"options"`
}

type Respondent struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Name       *string   `json:"name"`
	IdentityID *string   `json:"-"` // Never expose in JSON
	Token      string    `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"created_at"`
}

type ResponseRecord struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	RespondentID string    `json:"respondent_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type SelectedOption struct {
	ResponseID string `json:"response_id"`
	OptionID   string `json:"option_id"`
	Preference int    `json:"preference"`
	Uncertain  bool   `json:"uncertain"`
}

type MyResponse struct {
	ResponseID  string           `json:"response_id"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Selections  []SelectionInput `json:"selections"`
}

// Ranking result types

type OptionResult struct {
	OptionID string            `json:"option_id"`
	Date     string            `json:"date"`
	Ranks    ranking.RankTuple `json:"ranks"`
	Label    ranking.Label     `json:"label"`
	Badge    *ranking.Badge    `json:"badge,omitempty"`
}

type ResultSnapshot struct {
	ID         string         `json:"id"`
	EventID    string         `json:"event_id"`
	Method     string         `json:"method"`
	ComputedAt time.Time      `json:"computed_at"`
	Rankings   []OptionResult `json:"rankings"`
	InputsHash string         `json:"inputs_hash"` // Count of responses folded into the snapshot
}

// Identity types

type IdentityInfo struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type IdentityEventSummary struct {
	EventID        string    `json:"event_id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	ShareSlug      *string   `json:"share_slug,omitempty"`
	RespondentName *string   `json:"respondent_name,omitempty"`
	AnsweredAt     time.Time `json:"answered_at"`
}

type GetMyEventsResponse struct {
	Events []IdentityEventSummary `json:"events"`
}

// Identity platform constants
const (
	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
