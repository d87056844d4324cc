package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Hint is a parsed inspect tag.
type Hint struct {
	Widget Widget
	Format string  // printf verb, empty for the default
	Min    float32 // bar lower bound
	Max    float32 // bar upper bound
}

// Field is one exported component field ready for drawing.
type Field struct {
	Name  string
	Value any
	Hint  Hint
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,key:value...]"`. Known keys are fmt, min and max.
//
//	`inspect:"bar,max:2"`
//	`inspect:"label,fmt:%.3f"`
func ParseTag(tag string) Hint {
	h := Hint{Max: 1}
	if tag == "" {
		return h
	}

	parts := strings.Split(tag, ",")
	switch strings.TrimSpace(parts[0]) {
	case "label":
		h.Widget = WidgetLabel
	case "bar":
		h.Widget = WidgetBar
	case "angle":
		h.Widget = WidgetAngle
	case "bool":
		h.Widget = WidgetBool
	case "skip":
		h.Widget = WidgetSkip
	}

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			h.Format = value
		case "min":
			if f, err := strconv.ParseFloat(value, 32); err == nil {
				h.Min = float32(f)
			}
		case "max":
			if f, err := strconv.ParseFloat(value, 32); err == nil {
				h.Max = float32(f)
			}
		}
	}
	return h
}

// ExtractFields lists the exported fields of a struct (or pointer to one)
// that are not tagged skip.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	fields := make([]Field, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		h := ParseTag(sf.Tag.Get("inspect"))
		if h.Widget == WidgetSkip {
			continue
		}
		fv := v.Field(i)
		if h.Widget == WidgetAuto {
			h.Widget = widgetFor(fv.Kind())
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Hint: h})
	}
	return fields
}

func widgetFor(k reflect.Kind) Widget {
	if k == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue renders a value with format, or a two-decimal default
// for floats.
func FormatValue(value any, format string) string {
	if format != "" {
		return fmt.Sprintf(format, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(value)
	}
}

// Float converts numeric values to float32.
func Float(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	default:
		return 0, false
	}
}
