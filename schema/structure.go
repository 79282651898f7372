package schema

import (
	"github.com/jedipunkz/fieldlens/value"
)

// DetectStructure summarizes doc with the default rules.
func DetectStructure(doc *value.Value) StructureInfo {
	return defaultAnalyzer.DetectStructure(doc)
}

// DetectStructure classifies the overall shape of doc and recommends a display:
// a table for arrays of objects, a chart when numeric financial fields exist, a
// list for arrays of primitives, otherwise a card.
func (a *Analyzer) DetectStructure(doc *value.Value) StructureInfo {
	var info StructureInfo

	switch doc.Kind() {
	case value.Object:
		info.Type = SingleObject
	case value.Array:
		info.IsArray = true
		info.ArrayLength = doc.Len()
		if first, ok := doc.Index(0); ok && first.Kind() == value.Object {
			info.Type = ArrayOfObjectsDoc
		} else {
			info.Type = ArrayOfPrimitives
		}
	default:
		info.Type = Mixed
	}

	var financialNumbers bool
	root := newWalker(a, a.maxDepth).walk(doc, "", "", "", 0)
	if root != nil {
		for _, c := range root.children {
			c.visit(func(s *shape) {
				if s.depth > info.MaxDepth {
					info.MaxDepth = s.depth
				}
				if s.kind == Object || s.kind == ArrayOfObjects {
					info.HasNestedObjects = true
				}
				if s.financial {
					info.HasFinancialFields = true
					if s.valueType == NumberType {
						financialNumbers = true
					}
				}
			})
		}
	}

	switch {
	case info.Type == ArrayOfObjectsDoc:
		info.RecommendedDisplay = DisplayTable
	case financialNumbers:
		info.RecommendedDisplay = DisplayChart
	case info.Type == ArrayOfPrimitives:
		info.RecommendedDisplay = DisplayList
	default:
		info.RecommendedDisplay = DisplayCard
	}

	return info
}
