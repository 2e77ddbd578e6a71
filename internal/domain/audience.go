package domain

import (
	"strings"
	"time"
)

// AudienceRecord is one row selected from a source table by the audience
// query engine. Records are immutable once read; the bait injector and the
// identifier mapper produce copies rather than mutating in place.
type AudienceRecord struct {
	Phone         string `json:"telefone" db:"telefone"`
	Name          string `json:"nome" db:"nome"`
	EnvironmentID int    `json:"idgis" db:"idgis"`
	ContractID    int    `json:"contrato" db:"contrato"`
	TaxID         string `json:"cpf" db:"cpf"`
}

// RecipientKey returns the deduplication identity of the record. Two records
// with the same key are the same recipient regardless of formatting.
func (r AudienceRecord) RecipientKey() string {
	return NormalizePhone(r.Phone)
}

// NormalizePhone reduces a phone number to its canonical recipient key:
// every non-digit is stripped, and a leading country code 55 is dropped
// when more than 11 digits remain. "5511999999999" and "(11) 99999-9999"
// normalize to the same key.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	digits := b.String()
	if len(digits) > 11 && strings.HasPrefix(digits, "55") {
		digits = digits[2:]
	}
	return digits
}

// BaitMarker is appended to the name of injected monitoring recipients so
// they are recognizable in dispatch listings and provider panels.
const BaitMarker = " - ISCA"

// Bait is a monitoring/test recipient injected into eligible campaigns for
// QA and compliance visibility. Only active baits whose EnvironmentID occurs
// in the filtered audience are injected.
type Bait struct {
	ID            int       `json:"id" db:"id"`
	Phone         string    `json:"telefone" db:"telefone"`
	Name          string    `json:"nome" db:"nome"`
	EnvironmentID int       `json:"idgis" db:"idgis"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// AsRecord converts a bait into a synthetic audience record. Contract and
// tax id are intentionally zeroed: baits are not real customers.
func (b Bait) AsRecord() AudienceRecord {
	return AudienceRecord{
		Phone:         b.Phone,
		Name:          b.Name + BaitMarker,
		EnvironmentID: b.EnvironmentID,
		ContractID:    0,
		TaxID:         "",
	}
}
