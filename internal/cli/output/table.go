package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// TableFormatter renders command results as aligned text columns.
// A single struct becomes a FIELD/VALUE listing, a slice of structs
// becomes one row per element under a header line, and a map becomes
// a sorted KEY/VALUE listing. Column names come from json tags.
// Fields tagged `table:"wide"` only appear when Wide is set; fields
// tagged `table:"-"` never appear.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format writes data to w in tabular form. Values that have no
// tabular shape fall back to indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch v.Kind() {
	case reflect.Struct:
		f.writeFieldList(tw, v)
	case reflect.Slice, reflect.Array:
		f.writeRows(tw, v)
	case reflect.Map:
		f.writeSortedMap(tw, v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return tw.Flush()
}

// column pairs a rendered header with the struct field it reads.
type column struct {
	header string
	name   string
	index  int
}

func (f *TableFormatter) columns(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		opt := sf.Tag.Get("table")
		if opt == "-" || (opt == "wide" && !f.Wide) {
			continue
		}
		name := sf.Name
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		cols = append(cols, column{
			header: strings.ToUpper(name),
			name:   name,
			index:  i,
		})
	}
	return cols
}

func (f *TableFormatter) writeFieldList(tw *tabwriter.Writer, v reflect.Value) {
	if !f.NoHeaders {
		fmt.Fprintln(tw, "FIELD\tVALUE")
	}
	for _, c := range f.columns(v.Type()) {
		fmt.Fprintf(tw, "%s\t%s\n", c.name, cell(v.Field(c.index)))
	}
}

func (f *TableFormatter) writeRows(tw *tabwriter.Writer, v reflect.Value) {
	if v.Len() == 0 {
		return
	}

	first := v.Index(0)
	for first.Kind() == reflect.Pointer {
		first = first.Elem()
	}
	if first.Kind() != reflect.Struct {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(tw, cell(v.Index(i)))
		}
		return
	}

	cols := f.columns(first.Type())
	if !f.NoHeaders {
		headers := make([]string, len(cols))
		for i, c := range cols {
			headers[i] = c.header
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for i := 0; i < v.Len(); i++ {
		row := v.Index(i)
		for row.Kind() == reflect.Pointer {
			row = row.Elem()
		}
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = cell(row.Field(c.index))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
}

// writeSortedMap lists map entries by key so output is stable across
// runs.
func (f *TableFormatter) writeSortedMap(tw *tabwriter.Writer, v reflect.Value) {
	if !f.NoHeaders {
		fmt.Fprintln(tw, "KEY\tVALUE")
	}

	entries := make(map[string]string, v.Len())
	keys := make([]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := cell(iter.Key())
		keys = append(keys, k)
		entries[k] = cell(iter.Value())
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, entries[k])
	}
}

// cell renders a single value for display. Empty strings and empty
// collections show as "-" so sparse rows stay scannable.
func cell(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if t, ok := v.Interface().(time.Time); ok {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("2006-01-02 15:04")
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return "-"
		}
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice, reflect.Array, reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("(%d)", v.Len())
	default:
		return fmt.Sprint(v.Interface())
	}
}
