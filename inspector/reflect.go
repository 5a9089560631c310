package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a row is drawn.
type Widget int

const (
	WidgetLabel Widget = iota
	WidgetBar
	WidgetBool
	WidgetIDs
)

// Row is one field ready to draw.
type Row struct {
	Name   string
	Widget Widget
	Text   string
	Fill   float32  // WidgetBar: value/max clamped to [0, 1]
	On     bool     // WidgetBool
	Lines  []string // WidgetIDs: grouped identifiers
}

// fieldSpec is the parsed `inspect` tag of one struct field.
//
//	`inspect:"bar,max:100"`   bar filled to value/max
//	`inspect:"label,fmt:%d"`  formatted text
//	`inspect:"ids,per:4"`     []uint64 grouped per line
//	`inspect:"skip"`          hidden
//
// Untagged fields are labels, except bools (WidgetBool) and other slices (hidden).
type fieldSpec struct {
	index  int
	name   string
	widget Widget
	max    float64
	format string
	per    int
}

// layouts caches parsed specs per struct type. Only the render goroutine touches it.
var layouts = map[reflect.Type][]fieldSpec{}

func layoutFor(t reflect.Type) []fieldSpec {
	if specs, ok := layouts[t]; ok {
		return specs
	}
	var specs []fieldSpec
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if spec, ok := parseField(i, sf); ok {
			specs = append(specs, spec)
		}
	}
	layouts[t] = specs
	return specs
}

func parseField(index int, sf reflect.StructField) (fieldSpec, bool) {
	spec := fieldSpec{index: index, name: sf.Name, max: 1, per: 4}

	tag, tagged := sf.Tag.Lookup("inspect")
	parts := strings.Split(tag, ",")
	switch kind := strings.TrimSpace(parts[0]); {
	case kind == "skip":
		return spec, false
	case kind == "bar":
		spec.widget = WidgetBar
	case kind == "bool":
		spec.widget = WidgetBool
	case kind == "ids":
		spec.widget = WidgetIDs
	case !tagged || kind == "":
		switch sf.Type.Kind() {
		case reflect.Bool:
			spec.widget = WidgetBool
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Pointer:
			return spec, false
		}
	}

	for _, opt := range parts[1:] {
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "max":
			if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
				spec.max = f
			}
		case "fmt":
			spec.format = val
		case "per":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				spec.per = n
			}
		}
	}
	return spec, true
}

// Rows reads a tagged struct, or a pointer to one, into drawable rows.
func Rows(v any) []Row {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	specs := layoutFor(rv.Type())
	rows := make([]Row, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, spec.row(rv.Field(spec.index)))
	}
	return rows
}

func (s fieldSpec) row(fv reflect.Value) Row {
	r := Row{Name: s.name, Widget: s.widget}
	switch s.widget {
	case WidgetBar:
		if x, ok := numeric(fv); ok {
			r.Fill = float32(min(max(x/s.max, 0), 1))
			r.Text = strconv.FormatFloat(x, 'f', 0, 64)
			return r
		}
		r.Widget = WidgetLabel
	case WidgetBool:
		if fv.Kind() == reflect.Bool {
			r.On = fv.Bool()
			r.Text = "OFF"
			if r.On {
				r.Text = "ON"
			}
			return r
		}
		r.Widget = WidgetLabel
	case WidgetIDs:
		if ids, ok := fv.Interface().([]uint64); ok {
			r.Lines = FormatIDs(ids, s.per)
			return r
		}
		r.Widget = WidgetLabel
	}

	if s.format != "" {
		r.Text = fmt.Sprintf(s.format, fv.Interface())
	} else {
		r.Text = fmt.Sprint(fv.Interface())
	}
	return r
}

// numeric widens any integer or float kind.
func numeric(v reflect.Value) (float64, bool) {
	switch {
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.CanFloat():
		return v.Float(), true
	}
	return 0, false
}
