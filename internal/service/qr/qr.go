// Package qr renders card payloads as QR codes.
package qr

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

// Size bounds accepted by the renderer, in pixels.
const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 200
)

// ErrSize reports a size outside [MinSize, MaxSize].
var ErrSize = errors.New("qr size out of range")

// Renderer draws payloads with fixed colours and error correction.
type Renderer struct {
	size       int
	level      qrcode.RecoveryLevel
	foreground color.Color
	background color.Color
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithColors overrides the black-on-white default.
func WithColors(fg, bg color.Color) Option {
	return func(r *Renderer) {
		r.foreground = fg
		r.background = bg
	}
}

// WithRecoveryLevel overrides the medium error-correction default.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(r *Renderer) {
		r.level = level
	}
}

// NewRenderer returns a renderer producing size x size images.
func NewRenderer(size int, opts ...Option) (*Renderer, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	r := &Renderer{
		size:       size,
		level:      qrcode.Medium,
		foreground: color.Black,
		background: color.White,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Size returns the default edge length in pixels.
func (r *Renderer) Size() int {
	return r.size
}

// PNG renders payload at the renderer's size.
func (r *Renderer) PNG(payload string) ([]byte, error) {
	return r.PNGSize(payload, r.size)
}

// PNGSize renders payload at an explicit size.
func (r *Renderer) PNGSize(payload string, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	code, err := r.code(payload)
	if err != nil {
		return nil, err
	}
	data, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return data, nil
}

// Image renders payload as an in-memory image.
func (r *Renderer) Image(payload string) (image.Image, error) {
	code, err := r.code(payload)
	if err != nil {
		return nil, err
	}
	return code.Image(r.size), nil
}

// Text renders payload with Unicode half blocks for terminals.
func (r *Renderer) Text(payload string) (string, error) {
	code, err := r.code(payload)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}

func (r *Renderer) code(payload string) (*qrcode.QRCode, error) {
	code, err := qrcode.New(payload, r.level)
	if err != nil {
		return nil, fmt.Errorf("build qr code: %w", err)
	}
	code.ForegroundColor = r.foreground
	code.BackgroundColor = r.background
	return code, nil
}

func checkSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrSize, size, MinSize, MaxSize)
	}
	return nil
}
