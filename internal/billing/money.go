package billing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders a monetary amount as a two-decimal USD string for the
// requesting locale. Rounding happens only here, at the presentation edge;
// the engine itself returns unrounded values.
func FormatAmount(amount float64, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("$%.2f", amount)
}
