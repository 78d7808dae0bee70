package persist

import "github.com/brackenmoor/mudcore/internal/object"

// CompressTree recursively applies object.Compress to a fully-populated
// Serialize() record and every one of its nested "contents" entries, each
// diffed against its own template's baseline (spec.md §6: "compressed form
// omits fields equal to the template baseline"). object.Compress itself
// only strips one map's fields against one baseline; this is the
// recursive walk spec.md's serialization layer leaves to callers, the
// same way object.Normalize recurses back the other direction.
func CompressTree(rec map[string]any, resolver TemplateResolver) map[string]any {
	typeTag, _ := rec["type"].(string)
	out := object.Compress(rec, baselineFor(rec, typeTag, resolver))

	if contents, ok := object.ContentsSlice(rec["contents"]); ok {
		compressed := make([]map[string]any, 0, len(contents))
		for _, c := range contents {
			compressed = append(compressed, CompressTree(c, resolver))
		}
		out["contents"] = compressed
	}
	return out
}

// NormalizeTree is CompressTree's inverse: it walks a compressed record
// tree, re-expanding each node against its own baseline before recursing
// into contents (spec.md §6 "Normalize ... recurses into contents").
func NormalizeTree(rec map[string]any, resolver TemplateResolver) map[string]any {
	typeTag, _ := rec["type"].(string)
	out := object.Normalize(rec, baselineFor(rec, typeTag, resolver))

	if contents, ok := object.ContentsSlice(out["contents"]); ok {
		normalized := make([]map[string]any, 0, len(contents))
		for _, c := range contents {
			normalized = append(normalized, NormalizeTree(c, resolver))
		}
		out["contents"] = normalized
	}
	return out
}

func baselineFor(rec map[string]any, typeTag string, resolver TemplateResolver) map[string]any {
	templateID, _ := rec["templateId"].(string)
	if templateID == "" || resolver == nil {
		return object.TypeDefault(typeTag)
	}
	tmpl, err := resolver.ResolveTemplate(templateID)
	if err != nil {
		return object.TypeDefault(typeTag)
	}
	return object.Baseline(tmpl, typeTag)
}
