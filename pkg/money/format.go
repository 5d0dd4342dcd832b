package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when the configured locale cannot be parsed.
const DefaultLocale = "ru"

// Formatter renders integer amounts in the smallest currency unit with
// locale-appropriate digit grouping.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewFormatter(locale string) *Formatter {
	tag := parseLocale(locale)
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Locale returns the BCP 47 tag the formatter groups digits for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// FormatAmount returns amount with grouping separators, e.g. "12 500" for ru.
func (f *Formatter) FormatAmount(amount int) string {
	return f.printer.Sprintf("%d", amount)
}

func parseLocale(locale string) language.Tag {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return language.MustParse(DefaultLocale)
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.MustParse(DefaultLocale)
	}
	return tag
}
