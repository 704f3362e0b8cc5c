package validation

import (
	"encoding/json"
	"fmt"
)

// fieldKind is the JSON type a schema field must carry.
type fieldKind int

const (
	kindNumber fieldKind = iota
	kindString
	kindObject
)

func (k fieldKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	default:
		return "object"
	}
}

type field struct {
	name string
	kind fieldKind
}

// Entity schemas are structural contracts: presence and JSON type of every
// required field. Extra fields are allowed and value semantics (email syntax
// and the like) are a separate concern.
var (
	userFields = []field{
		{"id", kindNumber},
		{"name", kindString},
		{"username", kindString},
		{"email", kindString},
		{"phone", kindString},
		{"website", kindString},
		{"address", kindObject},
		{"company", kindObject},
	}

	postFields = []field{
		{"id", kindNumber},
		{"title", kindString},
		{"body", kindString},
		{"userId", kindNumber},
	}

	commentFields = []field{
		{"id", kindNumber},
		{"name", kindString},
		{"email", kindString},
		{"body", kindString},
		{"postId", kindNumber},
	}
)

// ValidateUser checks a value against the User schema.
func ValidateUser(v any) error {
	return validateSchema("user", userFields, v)
}

// ValidatePost checks a value against the Post schema.
func ValidatePost(v any) error {
	return validateSchema("post", postFields, v)
}

// ValidateComment checks a value against the Comment schema.
func ValidateComment(v any) error {
	return validateSchema("comment", commentFields, v)
}

func validateSchema(entity string, fields []field, v any) error {
	obj, err := asObject(entity, v)
	if err != nil {
		return err
	}

	for _, f := range fields {
		qualified := entity + "." + f.name
		value, ok := obj[f.name]
		if !ok {
			return failed(qualified, "field present", nil)
		}
		if !matchesKind(value, f.kind) {
			return failed(qualified, f.kind.String(), fmt.Sprintf("%T", value))
		}
	}
	return nil
}

// asObject coerces the supported input shapes to a decoded JSON object.
func asObject(entity string, v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case json.RawMessage:
		return unmarshalObject(entity, t)
	case []byte:
		return unmarshalObject(entity, t)
	default:
		return nil, failed(entity, "JSON object", fmt.Sprintf("%T", v))
	}
}

func unmarshalObject(entity string, raw []byte) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, failed(entity, "JSON object", string(raw))
	}
	return obj, nil
}

func matchesKind(value any, kind fieldKind) bool {
	switch kind {
	case kindNumber:
		// encoding/json decodes every JSON number as float64; hand-built
		// fixture maps may carry native ints.
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case kindString:
		_, ok := value.(string)
		return ok
	default:
		_, ok := value.(map[string]any)
		return ok
	}
}
