package insight

// Helpers for reading optional fields out of a decoded provider response.
// The insight-generation path tolerates missing narrative fields; strict
// required-field checking belongs to the whole-transcript analysis path.

func optString(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func optStringOr(data map[string]any, key, fallback string) string {
	if s := optString(data, key); s != "" {
		return s
	}
	return fallback
}

func optFloat(data map[string]any, key string) float64 {
	f, _ := data[key].(float64)
	return f
}

func optStringList(data map[string]any, key string) []string {
	raw, _ := data[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func optWeightedTags(data map[string]any, key string) []weightedTagView {
	raw, _ := data[key].([]any)
	out := make([]weightedTagView, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, weightedTagView{
			Tag:    optString(obj, "tag"),
			Weight: optFloat(obj, "weight"),
		})
	}
	return out
}

type weightedTagView struct {
	Tag    string
	Weight float64
}
