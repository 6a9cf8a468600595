package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idr = message.NewPrinter(language.Indonesian)

// Rupiah formats amount in the Indonesian convention: "Rp 50.000,00".
func Rupiah(amount float64) string {
	return idr.Sprintf("Rp %.2f", amount)
}
