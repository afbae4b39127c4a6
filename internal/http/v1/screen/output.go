package screen

// ScreenGetOutput for GET /screen
type ScreenGetOutput struct {
	Body ScreenData
}

// ViewOutput for operations that return the updated view
type ViewOutput struct {
	Body View
}

// SaveOutput for POST /screen/save
type SaveOutput struct {
	Body Ack
}

// RawOutput carries a non-JSON body with its media type.
type RawOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}
