package services

import "testing"

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		expect string
	}{
		{"zero", 0, "Zero USD Only"},
		{"single_digit", 5, "Five USD Only"},
		{"teens", 15, "Fifteen USD Only"},
		{"tens", 42, "Forty Two USD Only"},
		{"hundreds", 500, "Five Hundred USD Only"},
		{"hundred_and", 150, "One Hundred and Fifty USD Only"},
		{"thousands", 5000, "Five Thousand USD Only"},
		{"mixed", 913183, "Nine Hundred Thirteen Thousand One Hundred and Eighty Three USD Only"},
		{"millions", 12345678, "Twelve Million Three Hundred Forty Five Thousand Six Hundred and Seventy Eight USD Only"},
		{"billions", 2000000000, "Two Billion USD Only"},
		{"rounds_cents", 99.60, "One Hundred USD Only"},
		{"negative", -100, "Negative One Hundred USD Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountToWords(tt.amount, "USD")
			if got != tt.expect {
				t.Errorf("AmountToWords(%v) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestAmountToWords_NoCurrency(t *testing.T) {
	if got := AmountToWords(7, ""); got != "Seven Only" {
		t.Errorf("AmountToWords(7, \"\") = %q, want \"Seven Only\"", got)
	}
}
