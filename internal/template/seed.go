package template

import (
	"certwizard/internal/constant"
	"certwizard/internal/model"
	"certwizard/internal/store"
)

const defaultHTMLContent = `<div style="border: 3px solid #208089; padding: 40px; text-align: center; font-family: Arial;">
  <h1>Certificate of Achievement</h1>
  <p>This is to certify that</p>
  <h2>{{participant_name}}</h2>
  <p>has successfully completed the program</p>
  <p><strong>Role:</strong> {{role}}</p>
  {{#if place}}<p><strong>Place:</strong> {{place}}</p>{{/if}}
  <p>Date: {{issue_date}}</p>
</div>`

const defaultSVGContent = `<svg width="800" height="600" xmlns="http://www.w3.org/2000/svg">
  <rect width="800" height="600" fill="white" stroke="#208089" stroke-width="3"/>
  <text x="400" y="100" font-size="48" font-weight="bold" text-anchor="middle">Certificate</text>
  <text x="400" y="200" font-size="32" text-anchor="middle">{{participant_name}}</text>
  <text x="400" y="300" font-size="20" text-anchor="middle">Role: {{role}}</text>
  {{#if place}}<text x="400" y="350" font-size="20" text-anchor="middle">Place: {{place}}</text>{{/if}}
  <line x1="100" y1="500" x2="700" y2="500" stroke="#208089" stroke-width="2"/>
</svg>`

// SeedDefaults installs the built-in templates. They carry fixed identifiers
// so re-seeding is idempotent, and they can never be edited or deleted. The
// identifiers are local: the rendering service learns about a built-in
// template the first time it is used for generation.
func SeedDefaults(s *store.WizardStore) {
	s.PutTemplate(model.TemplateEntity{
		ID:          constant.LocalTemplateIdPrefix + "standard-html",
		Name:        "Default HTML Certificate",
		Description: "Built-in HTML certificate layout",
		Type:        constant.TemplateTypeHTML,
		Content:     defaultHTMLContent,
		IsDefault:   true,
		IsStandard:  true,
	})
	s.PutTemplate(model.TemplateEntity{
		ID:          constant.LocalTemplateIdPrefix + "standard-svg",
		Name:        "Default SVG Certificate",
		Description: "Built-in SVG certificate layout",
		Type:        constant.TemplateTypeSVG,
		Content:     defaultSVGContent,
		IsDefault:   true,
		IsStandard:  true,
	})
}
