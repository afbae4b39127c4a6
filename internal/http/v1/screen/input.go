package screen

// ScreenGetInput for GET /screen (no body needed)
type ScreenGetInput struct{}

// FieldEditInput for PUT /screen/fields/{field}
type FieldEditInput struct {
	Field string `path:"field" enum:"firstName,lastName,company,phone,email" doc:"Input to edit"`
	Body  struct {
		Value string `json:"value" doc:"New value, stored verbatim" example:"Ada"`
	}
}

// FieldFocusInput for POST /screen/fields/{field}/focus
type FieldFocusInput struct {
	Field string `path:"field" enum:"firstName,lastName,company,phone,email" doc:"Input to focus"`
}

// BlurInput for POST /screen/blur (no body needed)
type BlurInput struct{}

// SaveInput for POST /screen/save (no body needed)
type SaveInput struct{}

// VCardInput for GET /screen/vcard (no body needed)
type VCardInput struct{}

// QRPNGInput for GET /screen/qr.png
type QRPNGInput struct {
	Size int `query:"size" minimum:"64" maximum:"1024" doc:"Edge length in pixels; defaults to the configured size" example:"200"`
}

// QRTextInput for GET /screen/qr.txt (no body needed)
type QRTextInput struct{}
