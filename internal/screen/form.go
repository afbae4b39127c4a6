package screen

// Keyboard kinds hint which input method a client should present.
const (
	KeyboardDefault = "default"
	KeyboardPhone   = "phone-pad"
	KeyboardEmail   = "email-address"
)

// Form describes the screen layout. It carries no behaviour; clients
// render it as they see fit.
type Form struct {
	Title     string
	Subtitle  string
	Sections  []Section
	SaveLabel string
}

// Section groups related inputs under a heading.
type Section struct {
	Title  string
	Inputs []Input
}

// Input describes one text field.
type Input struct {
	Field          Field
	Label          string
	Placeholder    string
	Keyboard       string
	AutoCapitalize bool
}

// DefaultForm is the stock layout: personal, professional and contact sections.
func DefaultForm() Form {
	return Form{
		Title:    "My Card",
		Subtitle: "Your details are saved on this device",
		Sections: []Section{
			{
				Title: "Personal information",
				Inputs: []Input{
					{Field: FieldFirstName, Label: "First name", Placeholder: "First name", Keyboard: KeyboardDefault, AutoCapitalize: true},
					{Field: FieldLastName, Label: "Last name", Placeholder: "Last name", Keyboard: KeyboardDefault, AutoCapitalize: true},
				},
			},
			{
				Title: "Professional information",
				Inputs: []Input{
					{Field: FieldCompany, Label: "Company", Placeholder: "Company", Keyboard: KeyboardDefault, AutoCapitalize: true},
				},
			},
			{
				Title: "Contact details",
				Inputs: []Input{
					{Field: FieldPhone, Label: "Phone", Placeholder: "Phone", Keyboard: KeyboardPhone},
					{Field: FieldEmail, Label: "Email", Placeholder: "Email", Keyboard: KeyboardEmail},
				},
			},
		},
		SaveLabel: "Save my details",
	}
}

// Outcome of a save attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Ack is the acknowledgment shown to the user after a save.
type Ack struct {
	Outcome Outcome
	Title   string
	Message string
}

// Messages holds the two acknowledgments a save can produce.
type Messages struct {
	Success Ack
	Failure Ack
}

// DefaultMessages returns the stock acknowledgment texts.
func DefaultMessages() Messages {
	return Messages{
		Success: Ack{Outcome: OutcomeSuccess, Title: "Saved", Message: "Your details have been saved."},
		Failure: Ack{Outcome: OutcomeFailure, Title: "Error", Message: "Unable to save your details."},
	}
}
