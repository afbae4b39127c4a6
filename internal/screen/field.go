package screen

import (
	"fmt"

	"github.com/janisto/contact-card/internal/service/profile"
)

// Field names one editable text input. Values match the persisted JSON keys.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldCompany   Field = "company"
	FieldPhone     Field = "phone"
	FieldEmail     Field = "email"
)

// Fields lists the inputs in display order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldCompany, FieldPhone, FieldEmail}

// ParseField validates a field name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f Field) get(p profile.Profile) string {
	switch f {
	case FieldFirstName:
		return p.FirstName
	case FieldLastName:
		return p.LastName
	case FieldCompany:
		return p.Company
	case FieldPhone:
		return p.Phone
	case FieldEmail:
		return p.Email
	}
	return ""
}

func (f Field) set(p *profile.Profile, value string) {
	switch f {
	case FieldFirstName:
		p.FirstName = value
	case FieldLastName:
		p.LastName = value
	case FieldCompany:
		p.Company = value
	case FieldPhone:
		p.Phone = value
	case FieldEmail:
		p.Email = value
	}
}
