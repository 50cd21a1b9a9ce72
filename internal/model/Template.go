package model

import (
	"strings"

	"certwizard/internal/constant"
)

// TemplateEntity is a stored certificate layout. Content holds the inline
// HTML/SVG markup; legacy PDF uploads keep their markup empty and reference
// an object-storage asset instead.
type TemplateEntity struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Type        constant.TemplateType `json:"type"`
	Content     string                `json:"content,omitempty"`
	// AssetObject is the object-storage key of an uploaded binary asset.
	// The object is owned by this entity and removed when the entity is
	// deleted or its asset is replaced.
	AssetObject string `json:"assetObject,omitempty"`
	IsDefault   bool   `json:"isDefault"`
	// Standard templates are seeded at startup and can neither be edited
	// nor deleted.
	IsStandard bool `json:"isStandard"`
}

func (t TemplateEntity) HasAsset() bool {
	return t.AssetObject != ""
}

// IsLocal reports whether the template was created in this process and is
// not yet known to the rendering service.
func (t TemplateEntity) IsLocal() bool {
	return strings.HasPrefix(t.ID, constant.LocalTemplateIdPrefix)
}
