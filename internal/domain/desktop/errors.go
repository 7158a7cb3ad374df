package desktop

import (
	"errors"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/catalog"
)

var (
	ErrDesktopNotFound = errors.New("desktop not found")
	ErrTooManyDesktops = errors.New("too many desktops")
	ErrDesktopClosed   = errors.New("desktop closed")
	ErrCardsDisabled   = errors.New("cards disabled while a modal is active")
	ErrUnknownContent  = catalog.ErrUnknownContent
	ErrGestureActive   = errors.New("another gesture is in progress")
	ErrInvalidGesture  = errors.New("invalid gesture kind")
	ErrWindowNotFound  = errors.New("window not found")
	ErrInvalidWindow   = errors.New("invalid window")
)
