package logger

// RedactPhone masks a phone number for safe logging, keeping only the last
// four digits: "11999999999" → "*******9999". Values of four characters or
// fewer are fully masked.
func RedactPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	masked := make([]byte, len(phone))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], phone[len(phone)-4:])
	return string(masked)
}

// RedactTaxID masks a CPF, keeping only the first three digits:
// "12345678901" → "123********".
func RedactTaxID(taxID string) string {
	if len(taxID) <= 3 {
		return "***"
	}
	masked := make([]byte, len(taxID))
	copy(masked, taxID[:3])
	for i := 3; i < len(masked); i++ {
		masked[i] = '*'
	}
	return string(masked)
}
