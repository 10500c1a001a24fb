package schema

import (
	"bytes"
	"encoding/json"
	"reflect"
)

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// missingFields walks the raw document alongside the target type and reports
// required fields that are absent or null. encoding/json leaves such fields
// at their zero value, which would otherwise be indistinguishable from a
// legitimate zero such as a balance of 0.
func missingFields(data []byte, t reflect.Type, path string) []Issue {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		var issues []Issue
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Anonymous {
				continue
			}
			name, omitempty := jsonName(field)
			if name == "-" {
				continue
			}
			fieldPath := joinPath(path, name)
			raw, ok := obj[name]
			if !ok || isNull(raw) {
				if !omitempty {
					issues = append(issues, Issue{Path: fieldPath, Message: "is required"})
				}
				continue
			}
			issues = append(issues, missingFields(raw, field.Type, fieldPath)...)
		}
		return issues

	case reflect.Slice, reflect.Array:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		var issues []Issue
		for i, item := range items {
			issues = append(issues, missingFields(item, t.Elem(), indexPath(path, i))...)
		}
		return issues
	}
	return nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
