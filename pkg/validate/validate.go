// Package validate provides struct-tag validation.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required     field must not be zero/empty
//	nullable     if empty, skip all remaining rules for this field
//	numeric      any finite number (strings are parsed; NaN and Inf fail)
//	integer      whole number
//	min=N        string: min char length | number: min value
//	max=N        string: max char length | number: max value
//	gte=N        number >= N
//	lte=N        number <= N
//	in=a,b,c     value must be one of the listed items
//	not_in=a,b,c value must NOT be one of the listed items
//
// The field name reported is taken from the `form` tag, then the `json` tag.
// A `message` tag replaces the default text of the required rule, and a
// `message_<rule>` tag replaces the text of that rule:
//
//	type productForm struct {
//	    Name     string `form:"name"     validate:"required" message:"nama tidak boleh kosong"`
//	    Price    string `form:"price"    validate:"required,numeric,gte=0" message_numeric:"harga harus berupa angka"`
//	    Category string `form:"category" validate:"nullable,in=Baju,Celana,Aksesoris,Jaket"`
//	}
package validate

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FieldError is one violated field. Struct returns them in declaration order.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Errors is the ordered result of Struct.
type Errors []FieldError

// Struct validates all exported fields of v that carry a `validate` tag and
// reports the first failing rule of each field.
func Struct(v interface{}) Errors {
	var errs Errors

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		value := rv.Field(i)
		for value.Kind() == reflect.Ptr && !value.IsNil() {
			value = value.Elem()
		}

		name := fieldName(field)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				key, _, _ := strings.Cut(rule, "=")
				if custom := ruleMessage(field, key); custom != "" {
					msg = custom
				}
				errs = append(errs, FieldError{Field: name, Rule: key, Message: msg})
				break
			}
		}
	}

	return errs
}

// HasErrors returns true when errs is non-empty.
func HasErrors(errs Errors) bool { return len(errs) > 0 }

func ruleMessage(f reflect.StructField, rule string) string {
	if msg := f.Tag.Get("message_" + rule); msg != "" {
		return msg
	}
	if rule == "required" {
		return f.Tag.Get("message")
	}
	return ""
}

func applyRule(rule, field string, v reflect.Value) string {
	raw := stringOf(v)
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "numeric":
		if _, ok := numberOf(v); !ok {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		if !isIntKind(v) {
			if _, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil {
				return fmt.Sprintf("The %s field must be an integer.", field)
			}
		}

	case "min":
		n := mustParseFloat(param)
		if f, ok := numberOf(v); ok && isNumericKind(v) {
			if f < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n := mustParseFloat(param)
		if f, ok := numberOf(v); ok && isNumericKind(v) {
			if f > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gte":
		n := mustParseFloat(param)
		if f, ok := numberOf(v); !ok || f < n {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lte":
		n := mustParseFloat(param)
		if f, ok := numberOf(v); !ok || f > n {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "not_in":
		for _, f := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(f) {
				return fmt.Sprintf("The selected %s is invalid.", field)
			}
		}
	}

	return ""
}

func stringOf(v reflect.Value) string {
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return ""
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func isEmpty(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isIntKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	return isIntKind(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

// numberOf returns the numeric value of v, parsing strings. NaN and the
// infinities are not numbers here.
func numberOf(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return finite(v.Float())
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(stringOf(v)), 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// splitRules splits the validate tag by comma while keeping the values of
// multi-value rules (in=, not_in=) together.
// "nullable,in=Baju,Celana,max=10" → ["nullable","in=Baju,Celana","max=10"]
func splitRules(tag string) []string {
	var rules []string
	var current strings.Builder
	inParam := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch != ',' {
			current.WriteByte(ch)
			if !inParam {
				s := current.String()
				inParam = s == "in=" || s == "not_in="
			}
			continue
		}

		if inParam && !looksLikeNewRule(tag[i+1:]) {
			current.WriteByte(ch)
			continue
		}

		rules = append(rules, current.String())
		current.Reset()
		inParam = false
	}
	if current.Len() > 0 {
		rules = append(rules, current.String())
	}
	return rules
}

func looksLikeNewRule(s string) bool {
	known := []string{
		"required", "nullable", "numeric", "integer",
		"min=", "max=", "gte=", "lte=", "in=", "not_in=",
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
