package screen

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/contact-card/internal/platform/logging"
	screensvc "github.com/janisto/contact-card/internal/screen"
	"github.com/janisto/contact-card/internal/service/card"
	"github.com/janisto/contact-card/internal/service/qr"
)

// Controller is the part of the screen the HTTP surface drives.
type Controller interface {
	Snapshot() screensvc.View
	Form() screensvc.Form
	Edit(field screensvc.Field, value string) error
	Focus(field screensvc.Field) error
	Blur()
	Save(ctx context.Context) (screensvc.Ack, error)
	Payload() string
	QRPNG(size int) ([]byte, error)
	QRText() (string, error)
}

// Register registers screen endpoints.
func Register(api huma.API, ctl Controller) {
	huma.Register(api, huma.Operation{
		OperationID: "get-screen",
		Method:      http.MethodGet,
		Path:        "/screen",
		Summary:     "Get the profile screen",
		Description: "Returns the form layout, the working and saved values and the live card payload.",
		Tags:        []string{"Screen"},
	}, func(_ context.Context, _ *ScreenGetInput) (*ScreenGetOutput, error) {
		return &ScreenGetOutput{Body: ScreenData{
			Form: toHTTPForm(ctl.Form()),
			View: toHTTPView(ctl.Snapshot()),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "edit-screen-field",
		Method:      http.MethodPut,
		Path:        "/screen/fields/{field}",
		Summary:     "Edit one input",
		Description: "Replaces the working value of one input and focuses it. Other inputs are untouched; nothing is saved.",
		Tags:        []string{"Screen"},
	}, func(_ context.Context, input *FieldEditInput) (*ViewOutput, error) {
		if err := ctl.Edit(screensvc.Field(input.Field), input.Body.Value); err != nil {
			return nil, mapScreenError(err)
		}
		return &ViewOutput{Body: toHTTPView(ctl.Snapshot())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "focus-screen-field",
		Method:      http.MethodPost,
		Path:        "/screen/fields/{field}/focus",
		Summary:     "Focus one input",
		Tags:        []string{"Screen"},
	}, func(_ context.Context, input *FieldFocusInput) (*ViewOutput, error) {
		if err := ctl.Focus(screensvc.Field(input.Field)); err != nil {
			return nil, mapScreenError(err)
		}
		return &ViewOutput{Body: toHTTPView(ctl.Snapshot())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "blur-screen",
		Method:      http.MethodPost,
		Path:        "/screen/blur",
		Summary:     "Dismiss the active input",
		Tags:        []string{"Screen"},
	}, func(_ context.Context, _ *BlurInput) (*ViewOutput, error) {
		ctl.Blur()
		return &ViewOutput{Body: toHTTPView(ctl.Snapshot())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-screen",
		Method:      http.MethodPost,
		Path:        "/screen/save",
		Summary:     "Save the working values",
		Description: "Dismisses the active input and writes the working values to the store. " +
			"A failed save leaves the working values in place and can be retried; its 503 problem " +
			"carries the failure acknowledgment in `ack`.",
		Tags: []string{"Screen"},
		Errors: []int{
			http.StatusConflict,
			http.StatusServiceUnavailable,
		},
	}, func(ctx context.Context, _ *SaveInput) (*SaveOutput, error) {
		ack, err := ctl.Save(ctx)
		if err != nil {
			if errors.Is(err, screensvc.ErrSaveFailed) {
				return nil, newSaveFailedError(ack)
			}
			return nil, mapScreenError(err)
		}
		return &SaveOutput{Body: toHTTPAck(ack)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-screen-vcard",
		Method:      http.MethodGet,
		Path:        "/screen/vcard",
		Summary:     "Get the live card payload",
		Description: "Returns the vCard encoded from the working values, saved or not.",
		Tags:        []string{"Screen"},
	}, func(_ context.Context, _ *VCardInput) (*RawOutput, error) {
		return &RawOutput{
			ContentType:  card.ContentType,
			CacheControl: "no-store",
			Body:         []byte(ctl.Payload()),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-screen-qr-png",
		Method:      http.MethodGet,
		Path:        "/screen/qr.png",
		Summary:     "Get the live QR code",
		Tags:        []string{"Screen"},
	}, func(ctx context.Context, input *QRPNGInput) (*RawOutput, error) {
		data, err := ctl.QRPNG(input.Size)
		if err != nil {
			return nil, mapQRError(ctx, err)
		}
		return &RawOutput{ContentType: "image/png", CacheControl: "no-store", Body: data}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-screen-qr-text",
		Method:      http.MethodGet,
		Path:        "/screen/qr.txt",
		Summary:     "Get the live QR code as terminal text",
		Tags:        []string{"Screen"},
	}, func(ctx context.Context, _ *QRTextInput) (*RawOutput, error) {
		text, err := ctl.QRText()
		if err != nil {
			return nil, mapQRError(ctx, err)
		}
		return &RawOutput{
			ContentType:  "text/plain; charset=utf-8",
			CacheControl: "no-store",
			Body:         []byte(text),
		}, nil
	})
}

func mapScreenError(err error) error {
	switch {
	case errors.Is(err, screensvc.ErrUnknownField):
		return huma.Error422UnprocessableEntity("unknown field")
	case errors.Is(err, screensvc.ErrSaveInProgress):
		return huma.Error409Conflict("a save is already in progress")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func mapQRError(ctx context.Context, err error) error {
	if errors.Is(err, qr.ErrSize) {
		return huma.Error422UnprocessableEntity("size out of range")
	}
	// The only other failure is a payload beyond QR capacity.
	applog.LogWarn(ctx, "qr render failed", zap.Error(err))
	return huma.Error422UnprocessableEntity("card too large to encode as a QR code")
}

var _ Controller = (*screensvc.Screen)(nil)
