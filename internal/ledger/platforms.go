package ledger

import (
	"fmt"
	"slices"

	"github.com/dompet-dev/dompet/internal/model"
)

// AddPlatform creates a platform.
func (e *Engine) AddPlatform(name string) model.Platform {
	p := model.Platform{ID: e.newID(), Name: name}
	e.platforms = append(e.platforms, p)
	return p
}

// UpdatePlatform renames a platform and reports whether it exists.
func (e *Engine) UpdatePlatform(platformID, name string) bool {
	i := e.platformIndex(platformID)
	if i < 0 {
		return false
	}
	e.platforms[i].Name = name
	return true
}

// IsPlatformInUse reports whether any investment references the platform.
func (e *Engine) IsPlatformInUse(platformID string) bool {
	return slices.ContainsFunc(e.investments, func(inv model.Investment) bool {
		return inv.PlatformID == platformID
	})
}

// DeletePlatform removes an unused platform.
func (e *Engine) DeletePlatform(platformID string) error {
	i := e.platformIndex(platformID)
	if i < 0 {
		return nil
	}
	if e.IsPlatformInUse(platformID) {
		return fmt.Errorf("deleting platform %q: %w", e.platforms[i].Name, ErrPlatformInUse)
	}
	e.platforms = slices.Delete(e.platforms, i, i+1)
	return nil
}
