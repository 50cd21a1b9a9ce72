package constant

type TemplateType string

const (
	TemplateTypeHTML TemplateType = "html"
	TemplateTypeSVG  TemplateType = "svg"
	// Legacy uploads kept as an object-storage asset instead of inline markup.
	TemplateTypePDF TemplateType = "pdf"
)

var ValidTemplateTypes = map[TemplateType]bool{
	TemplateTypeHTML: true,
	TemplateTypeSVG:  true,
	TemplateTypePDF:  true,
}

// LocalTemplateIdPrefix marks templates created in this process that the
// rendering service does not know about yet. The prefix is the heuristic the
// generation orchestrator uses to decide whether a template must be persisted
// before generating.
const LocalTemplateIdPrefix = "local_"
