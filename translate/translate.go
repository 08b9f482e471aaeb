// Package translate renders user visible message text in the user's locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the user's locales are unknown.
const DEFAULT_LOCALE = "en-US"

var printer = newPrinter(userLocales())

// userLocales returns the user's preferred locales, if any can be found.
func userLocales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	return
}

// newPrinter makes a printer for the best match of locales, falling back to
// DEFAULT_LOCALE.
func newPrinter(locales []string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US Sprintf() style key in the current locale.
// Integers formatted with %d are grouped per the locale; callers pass
// addresses and words as strings.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
