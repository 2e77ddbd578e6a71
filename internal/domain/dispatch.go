package domain

import "time"

// DispatchStatus enumerates the approval/delivery lifecycle of one outbound
// message unit. Records are never deleted, only status-transitioned, and the
// transitions past pendente_aprovacao belong to the external approval flow.
type DispatchStatus string

const (
	DispatchPendingApproval DispatchStatus = "pendente_aprovacao"
	DispatchPending         DispatchStatus = "pendente"
	DispatchSent            DispatchStatus = "enviado"
	DispatchSendError       DispatchStatus = "erro_envio"
	DispatchDenied          DispatchStatus = "negado"
)

// DispatchRecord is one outbound message queued for provider delivery.
// EnvironmentID carries the post-mapping (provider specific) value.
type DispatchRecord struct {
	ID            int64          `json:"id" db:"id"`
	BatchID       string         `json:"batch_id" db:"batch_id"`
	Phone         string         `json:"telefone" db:"telefone"`
	Name          string         `json:"nome" db:"nome"`
	EnvironmentID int            `json:"idgis" db:"idgis"`
	ContractID    int            `json:"contrato" db:"contrato"`
	TaxID         string         `json:"cpf" db:"cpf"`
	Message       string         `json:"message" db:"message"`
	Provider      string         `json:"provider" db:"provider"`
	Status        DispatchStatus `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	SentAt        *time.Time     `json:"sent_at" db:"sent_at"`
}

// WildcardProvider matches any provider in an identifier mapping.
const WildcardProvider = "*"

// IDMapping rewrites a source environment id for a destination provider.
// Unique on (SourceTable, Provider, OriginalEnvID); Provider may be the
// wildcard "*". Absence of a mapping is not an error, it is the identity
// fallback.
type IDMapping struct {
	ID            int    `json:"id" db:"id"`
	SourceTable   string `json:"source_table" db:"source_table"`
	Provider      string `json:"provider" db:"provider"`
	OriginalEnvID int    `json:"original_idgis" db:"original_idgis"`
	MappedEnvID   int    `json:"mapped_idgis" db:"mapped_idgis"`
	Active        bool   `json:"active" db:"active"`
}
