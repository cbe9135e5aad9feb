package domain

import (
	"errors"
	"time"
)

var ErrInvalidHubStatus = errors.New("invalid hub status")

type HubStatus string

const (
	HubStatusDraft  HubStatus = "draft"
	HubStatusActive HubStatus = "active"
	HubStatusWon    HubStatus = "won"
	HubStatusLost   HubStatus = "lost"
)

func ParseHubStatus(s string) (HubStatus, error) {
	switch st := HubStatus(s); st {
	case HubStatusDraft, HubStatusActive, HubStatusWon, HubStatusLost:
		return st, nil
	default:
		return "", ErrInvalidHubStatus
	}
}

// Hub is a per-client workspace. ClientDomain is the only domain whose
// addresses may receive client invites into the hub.
type Hub struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"companyName"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ClientDomain string    `json:"clientDomain"`
	Status       HubStatus `json:"status"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
