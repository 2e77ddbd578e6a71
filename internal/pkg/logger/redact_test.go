package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactPhone(t *testing.T) {
	assert.Equal(t, "*******4321", RedactPhone("11987654321"))
	assert.Equal(t, "*********4321", RedactPhone("5511987654321"))
	assert.Equal(t, "****", RedactPhone("123"))
	assert.Equal(t, "****", RedactPhone(""))
}

func TestRedactTaxID(t *testing.T) {
	assert.Equal(t, "123********", RedactTaxID("12345678901"))
	assert.Equal(t, "***", RedactTaxID("12"))
}

func TestRedactPIIValueByKey(t *testing.T) {
	assert.Equal(t, "*******4321", redactPIIValue("telefone", "11987654321"))
	assert.Equal(t, "*******4321", redactPIIValue("recipient_phone", "11987654321"))
	assert.Equal(t, "123********", redactPIIValue("cpf", "12345678901"))
}

func TestRedactPIIValueEmbeddedPhone(t *testing.T) {
	got := redactPIIValue("detail", "falha ao enviar para 5511987654321 via zenvia")
	assert.Equal(t, "falha ao enviar para *********4321 via zenvia", got)
}

func TestRedactPIIValueLeavesPlainValues(t *testing.T) {
	assert.Equal(t, "clientes_sp", redactPIIValue("table", "clientes_sp"))
	assert.Equal(t, "42", redactPIIValue("count", "42"))
}
