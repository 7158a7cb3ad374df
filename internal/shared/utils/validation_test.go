package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		required bool
		wantErr  bool
	}{
		{"simple", "alerts", true, false},
		{"with separators", "zone_map-2", true, false},
		{"empty required", "", true, true},
		{"empty optional", "", false, false},
		{"slash", "a/b", true, true},
		{"space", "a b", true, true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id, "window_id", tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle(""))
	assert.NoError(t, ValidateTitle("Live Alerts"))
	assert.Error(t, ValidateTitle(strings.Repeat("x", MaxTitleLength+1)))
	assert.Error(t, ValidateTitle("bad\x00title"))
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "Live Alerts", SanitizeTitle("  Live Alerts "))
	assert.Equal(t, "Zones", SanitizeTitle("<b>Zones</b>"))
	assert.Equal(t, "", SanitizeTitle("<script>alert(1)</script>"))
	assert.Equal(t, "E-FIR & Reports", SanitizeTitle("E-FIR & Reports"))
}
