// Package translate localizes diagnostic text to the caller's locale, so
// every error and CLI message in this module goes through one narrow
// choke point instead of each package reaching for go-locale directly.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("csa-toolchain: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From renders an en-US Sprintf format through the detected locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
