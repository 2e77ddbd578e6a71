package dispatch

import (
	"strconv"
	"strings"
	"time"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// Renderer substitutes the fixed placeholder set into a message template:
// {nome}, {cpf}, {telefone}, {idgis}, {contrato} and {data}. Placeholders
// that don't match any field are left verbatim. Rendering must run after
// identifier mapping so {idgis} reflects the provider-specific value.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a renderer using the wall clock for {data}.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererAt creates a renderer with a fixed clock, for tests.
func NewRendererAt(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

// Render substitutes the record's fields into the template. {telefone} is
// the normalized recipient key, not the raw stored value.
func (r *Renderer) Render(template string, rec domain.AudienceRecord) string {
	replacer := strings.NewReplacer(
		"{nome}", rec.Name,
		"{cpf}", rec.TaxID,
		"{telefone}", domain.NormalizePhone(rec.Phone),
		"{idgis}", strconv.Itoa(rec.EnvironmentID),
		"{contrato}", strconv.Itoa(rec.ContractID),
		"{data}", r.now().Format("02/01/2006"),
	)
	return replacer.Replace(template)
}
