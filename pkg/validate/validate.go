// Package validate provides declarative struct-tag validation for request
// input, replacing per-handler ad-hoc checks.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	in=a,b,c            value must be one of the listed items
//	objectid            24-char hex MongoDB ObjectID
//	each_min=N          every element of a []string has at least N chars
//	each_max=N          every element of a []string has at most N chars
//	lt_field=other      numeric value strictly less than the sibling field
//	                    whose json name is "other"
//
// Example:
//
//	type Input struct {
//	    Title    string   `json:"title"    validate:"required,min=1,max=255"`
//	    Price    float64  `json:"price"    validate:"required,min=0"`
//	    Discount *float64 `json:"discountPrice" validate:"nullable,min=0,lt_field=price"`
//	    Category string   `json:"category" validate:"required,objectid"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
// Nested structs with their own tags are validated recursively, with errors
// keyed as "parent.child".
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	validateInto(rv, "", errs)
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// First returns one error message from the map, mirroring the "first failing
// rule" behaviour callers expect for single-message API responses.
func First(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return ""
}

func validateInto(rv reflect.Value, prefix string, errs map[string]string) {
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		name := jsonFieldName(field)
		if prefix != "" {
			name = prefix + "." + name
		}

		// Recurse into nested structs (e.g. shippingAddress).
		fv := deref(value)
		if fv.Kind() == reflect.Struct && field.Tag.Get("validate") != "-" && hasValidateTags(fv.Type()) {
			if field.Tag.Get("validate") == "required" && value.Kind() == reflect.Ptr && value.IsNil() {
				errs[name] = fmt.Sprintf("The %s field is required.", name)
				continue
			}
			if !(value.Kind() == reflect.Ptr && value.IsNil()) {
				validateInto(fv, name, errs)
				continue
			}
		}

		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}

		rules := splitRules(tag)

		// If `nullable` is present and the field is empty, skip all rules.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}
}

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	// required on a pointer means "present"; a pointer to a zero value passes.
	if rule == "required" && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}

	v = deref(v)
	raw := stringOf(v)
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "objectid":
		if !objectIDRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid object id.", field)
		}

	case "min":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else {
			if float64(len([]rune(raw))) < n {
				return fmt.Sprintf("The %s must be at least %s characters.", field, param)
			}
		}

	case "max":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else {
			if float64(len([]rune(raw))) > n {
				return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
			}
		}

	case "in":
		allowed := strings.Split(param, ",")
		for _, a := range allowed {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)

	case "each_min":
		n := int(mustParseFloat(param))
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				if len([]rune(fmt.Sprintf("%v", v.Index(i).Interface()))) < n {
					return fmt.Sprintf("Each %s entry must be at least %s characters.", field, param)
				}
			}
		}

	case "each_max":
		n := int(mustParseFloat(param))
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				if len([]rune(fmt.Sprintf("%v", v.Index(i).Interface()))) > n {
					return fmt.Sprintf("Each %s entry must not exceed %s characters.", field, param)
				}
			}
		}

	case "lt_field":
		other := findSiblingByJSONName(parent, param)
		if other == nil {
			return fmt.Sprintf("The %s has an unknown comparison field %q.", field, param)
		}
		ov := deref(*other)
		if !isNumericKind(v) || !isNumericKind(ov) {
			return fmt.Sprintf("The %s must be a number to compare with %s.", field, param)
		}
		if toFloat(v) >= toFloat(ov) {
			return fmt.Sprintf("The %s must be less than the %s.", field, param)
		}
	}

	return ""
}

// ── Helpers ──────────────────────────────────────────────────────────────────

var (
	emailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	objectIDRE = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func stringOf(v reflect.Value) string {
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return ""
	}
	return fmt.Sprintf("%v", v.Interface())
}

func hasValidateTags(rt reflect.Type) bool {
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Tag.Get("validate") != "" {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // false is a valid boolean value, not empty
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(stringOf(v), 64)
	return f
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// splitRules splits the validate tag by comma while keeping the multi-value
// in= parameter intact.
// e.g. "required,in=customer,admin,moderator,max=100"
// → ["required","in=customer,admin,moderator","max=100"]
func splitRules(tag string) []string {
	var rules []string
	var current strings.Builder
	inParam := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch == ',' {
			if inParam {
				rest := tag[i+1:]
				if looksLikeNewRule(rest) {
					rules = append(rules, current.String())
					current.Reset()
					inParam = false
				} else {
					current.WriteByte(ch)
				}
			} else {
				rules = append(rules, current.String())
				current.Reset()
			}
		} else {
			current.WriteByte(ch)
			if !inParam && current.String() == "in=" {
				inParam = true
			}
		}
	}
	if current.Len() > 0 {
		rules = append(rules, current.String())
	}
	return rules
}

// looksLikeNewRule reports whether s starts with a known rule keyword, i.e.
// the comma before it ends the current in= parameter.
func looksLikeNewRule(s string) bool {
	known := []string{
		"required", "nullable", "email", "numeric", "objectid",
		"min=", "max=", "in=", "each_min=", "each_max=", "lt_field=",
	}
	for _, k := range known {
		if strings.HasPrefix(s, k) {
			return true
		}
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}

// findSiblingByJSONName returns the field of parent whose json name matches.
func findSiblingByJSONName(parent reflect.Value, name string) *reflect.Value {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == name {
			v := parent.Field(i)
			return &v
		}
	}
	return nil
}
