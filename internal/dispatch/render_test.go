package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, 7, 9, 15, 30, 0, 0, time.Local)
}

func TestRenderAllPlaceholders(t *testing.T) {
	r := NewRendererAt(fixedClock)
	rec := domain.AudienceRecord{
		Phone:         "5511987654321",
		Name:          "Maria Silva",
		EnvironmentID: 364,
		ContractID:    88123,
		TaxID:         "12345678901",
	}

	got := r.Render("Ola {nome} (CPF {cpf}), contrato {contrato} no ambiente {idgis}: confirme {telefone} em {data}.", rec)
	assert.Equal(t, "Ola Maria Silva (CPF 12345678901), contrato 88123 no ambiente 364: confirme 11987654321 em 09/07/2025.", got)
}

func TestRenderUnknownPlaceholderLeftVerbatim(t *testing.T) {
	r := NewRendererAt(fixedClock)

	got := r.Render("Ola {nome}, use o codigo {codigo}.", domain.AudienceRecord{Name: "Jose"})
	assert.Equal(t, "Ola Jose, use o codigo {codigo}.", got)
}

func TestRenderRepeatedPlaceholders(t *testing.T) {
	r := NewRendererAt(fixedClock)

	got := r.Render("{nome}, {nome}!", domain.AudienceRecord{Name: "Ana"})
	assert.Equal(t, "Ana, Ana!", got)
}

func TestRenderNoPlaceholders(t *testing.T) {
	r := NewRendererAt(fixedClock)

	template := "Mensagem fixa sem variaveis."
	assert.Equal(t, template, r.Render(template, domain.AudienceRecord{Name: "Ana"}))
}

func TestRenderEmptyFields(t *testing.T) {
	r := NewRendererAt(fixedClock)

	got := r.Render("Ola {nome}, CPF {cpf}.", domain.AudienceRecord{})
	assert.Equal(t, "Ola , CPF .", got)
}
