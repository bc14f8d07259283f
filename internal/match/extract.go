package match

import (
	"encoding/json"
	"strings"
)

// IngredientNames extracts an ordered list of ingredient-name strings from a
// legacy recipe's raw ingredient field. The field has accumulated several
// shapes over time: a comma-separated string, an array of strings, or an
// array of objects carrying an "item" or "name" key. Anything unparseable
// yields an empty list rather than an error, so one malformed recipe cannot
// sink a whole scoring pass.
func IngredientNames(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		var names []string
		for _, piece := range strings.Split(asString, ",") {
			if p := strings.TrimSpace(piece); p != "" {
				names = append(names, p)
			}
		}
		return names
	}

	var asList []json.RawMessage
	if err := json.Unmarshal(raw, &asList); err != nil {
		return nil
	}

	var names []string
	for _, el := range asList {
		if name := elementName(el); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func elementName(el json.RawMessage) string {
	var s string
	if err := json.Unmarshal(el, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(el, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"item", "name"} {
		var v string
		if raw, ok := obj[key]; ok && json.Unmarshal(raw, &v) == nil {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
