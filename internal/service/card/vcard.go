// Package card turns a profile into a vCard 3.0 text payload.
package card

import (
	"strings"

	"github.com/janisto/contact-card/internal/service/profile"
)

// ContentType is the media type of an encoded payload.
const ContentType = "text/vcard; charset=utf-8"

// Encode fills the fixed vCard template with p. Values are embedded
// verbatim: ';', ':', ',' and line breaks are not escaped, so such input
// yields a payload that strict vCard parsers may reject.
func Encode(p profile.Profile) string {
	var b strings.Builder
	b.Grow(96 + len(p.FirstName)*2 + len(p.LastName)*2 + len(p.Company) + len(p.Phone) + len(p.Email))

	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:3.0\n")
	b.WriteString("N:" + p.LastName + ";" + p.FirstName + ";;;\n")
	b.WriteString("FN:" + p.FirstName + " " + p.LastName + "\n")
	b.WriteString("ORG:" + p.Company + "\n")
	b.WriteString("TEL;TYPE=CELL:" + p.Phone + "\n")
	b.WriteString("EMAIL:" + p.Email + "\n")
	b.WriteString("END:VCARD")
	return b.String()
}
