package screen

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/contact-card/internal/platform/timeutil"
	screensvc "github.com/janisto/contact-card/internal/screen"
	"github.com/janisto/contact-card/internal/service/profile"
)

// Fields holds the five profile inputs.
type Fields struct {
	FirstName string `json:"firstName" doc:"First name"    example:"Ada"`
	LastName  string `json:"lastName"  doc:"Last name"     example:"Lovelace"`
	Company   string `json:"company"   doc:"Company"       example:""`
	Phone     string `json:"phone"     doc:"Phone number"  example:"+15551234567"`
	Email     string `json:"email"     doc:"Email address" example:"ada@example.com"`
}

// View is the screen state returned by every screen operation.
type View struct {
	State     string        `json:"state"           doc:"Controller state"             enum:"uninitialized,loaded,editing,saving"`
	Focus     string        `json:"focus,omitempty" doc:"Focused input, if any"        example:"email"`
	Fields    Fields        `json:"fields"          doc:"Working values shown in the form"`
	Committed Fields        `json:"committed"       doc:"Last saved values"`
	Stored    bool          `json:"stored"          doc:"Whether a record exists in the store"`
	Dirty     bool          `json:"dirty"           doc:"Working values differ from the saved ones"`
	Payload   string        `json:"payload"         doc:"vCard encoded from the working values"`
	SavedAt   timeutil.Time `json:"savedAt"         doc:"Time of the last successful save in this session" example:"2024-01-15T10:30:00.000Z"`
}

// ScreenData is the full screen: layout plus current view.
type ScreenData struct {
	Form Form `json:"form" doc:"Form layout"`
	View
}

// Form describes how clients lay out the inputs.
type Form struct {
	Title     string    `json:"title"     example:"My Card"`
	Subtitle  string    `json:"subtitle"  example:"Your details are saved on this device"`
	Sections  []Section `json:"sections"`
	SaveLabel string    `json:"saveLabel" example:"Save my details"`
}

// Section groups related inputs under a heading.
type Section struct {
	Title  string  `json:"title"  example:"Contact details"`
	Inputs []Input `json:"inputs"`
}

// Input describes one text field.
type Input struct {
	Field          string `json:"field"          example:"phone"`
	Label          string `json:"label"          example:"Phone"`
	Placeholder    string `json:"placeholder"    example:"Phone"`
	Keyboard       string `json:"keyboard"       enum:"default,phone-pad,email-address"`
	AutoCapitalize bool   `json:"autoCapitalize"`
}

// Ack is the acknowledgment of a save.
type Ack struct {
	Outcome string `json:"outcome" enum:"success,failure"`
	Title   string `json:"title"   example:"Saved"`
	Message string `json:"message" example:"Your details have been saved."`
}

// SaveFailedError is the 503 problem for a failed save. It carries the
// same acknowledgment a successful save returns as its body.
type SaveFailedError struct {
	huma.ErrorModel
	Ack Ack `json:"ack" doc:"Acknowledgment to show the user"`
}

func newSaveFailedError(ack screensvc.Ack) *SaveFailedError {
	return &SaveFailedError{
		ErrorModel: huma.ErrorModel{
			Title:  http.StatusText(http.StatusServiceUnavailable),
			Status: http.StatusServiceUnavailable,
			Detail: ack.Message,
		},
		Ack: toHTTPAck(ack),
	}
}

func toHTTPFields(p profile.Profile) Fields {
	return Fields{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
		Phone:     p.Phone,
		Email:     p.Email,
	}
}

func toHTTPView(v screensvc.View) View {
	return View{
		State:     v.State.String(),
		Focus:     string(v.Focus),
		Fields:    toHTTPFields(v.Working),
		Committed: toHTTPFields(v.Committed),
		Stored:    v.Stored,
		Dirty:     v.Dirty,
		Payload:   v.Payload,
		SavedAt:   timeutil.NewTime(v.SavedAt),
	}
}

func toHTTPForm(f screensvc.Form) Form {
	sections := make([]Section, 0, len(f.Sections))
	for _, s := range f.Sections {
		inputs := make([]Input, 0, len(s.Inputs))
		for _, in := range s.Inputs {
			inputs = append(inputs, Input{
				Field:          string(in.Field),
				Label:          in.Label,
				Placeholder:    in.Placeholder,
				Keyboard:       in.Keyboard,
				AutoCapitalize: in.AutoCapitalize,
			})
		}
		sections = append(sections, Section{Title: s.Title, Inputs: inputs})
	}
	return Form{
		Title:     f.Title,
		Subtitle:  f.Subtitle,
		Sections:  sections,
		SaveLabel: f.SaveLabel,
	}
}

func toHTTPAck(a screensvc.Ack) Ack {
	return Ack{
		Outcome: string(a.Outcome),
		Title:   a.Title,
		Message: a.Message,
	}
}
