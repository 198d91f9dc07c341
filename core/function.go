package core

import (
	"reflect"
	"strings"
)

// ResourceTarget flattens a resource struct into the map form rule
// enforcers evaluate against, keyed by json tag.
func ResourceTarget(resource any) map[string]any {
	result := make(map[string]any)
	v := reflect.ValueOf(resource)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return result
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			embedded := ResourceTarget(v.Field(i).Interface())
			for k, val := range embedded {
				result[k] = val
			}
			continue
		}

		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}

		result[tag] = v.Field(i).Interface()
	}
	return result
}
