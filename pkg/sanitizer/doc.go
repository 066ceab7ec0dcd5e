// Package sanitizer cleans user input before it is validated or sent, and
// masks identifiers before they are logged.
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.NormalizeWhitespace)
//	name := clean("  Ada   Lovelace ")          // "Ada Lovelace"
//	log.Info("login", "identifier", sanitizer.MaskEmail("ada@example.com"))
package sanitizer
