package desktop

import (
	"fmt"

	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/utils"
)

// NormalizeConfig validates a window config arriving from a shell and strips
// markup from its title. Geometry is not checked.
func NormalizeConfig(cfg types.WindowConfig) (types.WindowConfig, error) {
	if err := utils.ValidateID(cfg.ID, "id", true); err != nil {
		return types.WindowConfig{}, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if !cfg.Content.Valid() {
		return types.WindowConfig{}, fmt.Errorf("%w: %q", ErrUnknownContent, cfg.Content)
	}
	if err := utils.ValidateTitle(cfg.Title); err != nil {
		return types.WindowConfig{}, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	cfg.Title = utils.SanitizeTitle(cfg.Title)
	return cfg, nil
}
