package models

import (
	"strings"
	"time"
)

// Company is the issuer whose books are kept.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	GSTIN     string    `json:"gstin"`
	StateCode string    `json:"state_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Party represents a customer or vendor of a company.
type Party struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // customer, vendor
	Address   string    `json:"address"`
	GSTIN     string    `json:"gstin"`
	StateCode string    `json:"state_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the copy of an issuer's or buyer's details printed on a
// document. It is taken once when the document is created and never
// re-derived from the live record.
type Snapshot struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
}

func (c Company) Snapshot() Snapshot {
	return Snapshot{Name: c.Name, Address: c.Address, GSTIN: c.GSTIN, StateCode: stateCode(c.StateCode, c.GSTIN)}
}

func (p Party) Snapshot() Snapshot {
	return Snapshot{Name: p.Name, Address: p.Address, GSTIN: p.GSTIN, StateCode: stateCode(p.StateCode, p.GSTIN)}
}

// stateCode prefers the explicit code and falls back to the two digits a
// GSTIN starts with.
func stateCode(code, gstin string) string {
	if code = strings.TrimSpace(code); code != "" {
		return code
	}
	gstin = strings.TrimSpace(gstin)
	if len(gstin) >= 2 {
		return gstin[:2]
	}
	return ""
}
