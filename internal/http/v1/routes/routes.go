package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/contact-card/internal/http/v1/screen"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, ctl screen.Controller) {
	screen.Register(api, ctl)
}
