package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// FormatArgument renders an argument for logs and graph dumps. Node references
// render as %name, literals as their Go-ish value, containers recursively.
func FormatArgument(a Argument) string {
	switch v := a.(type) {
	case nil:
		return "nil"
	case *Node:
		return v.String()
	case cty.Value:
		return formatCtyValue(v)
	case []Argument:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = FormatArgument(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]Argument:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, FormatArgument(v[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatCtyValue converts a cty.Value to a compact display form.
func formatCtyValue(val cty.Value) string {
	if !val.IsKnown() || val.IsNull() {
		return "null"
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return fmt.Sprintf("%q", val.AsString())
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return fmt.Sprintf("%v", f)
	case ty == cty.Bool:
		return fmt.Sprintf("%v", val.True())
	case ty.IsTupleType() || ty.IsListType():
		var parts []string
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			parts = append(parts, formatCtyValue(v))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ty.IsObjectType() || ty.IsMapType():
		var parts []string
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			parts = append(parts, fmt.Sprintf("%s: %s", k.AsString(), formatCtyValue(v)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return val.GoString()
	}
}

func formatArgs(args []Argument) string {
	if len(args) == 0 {
		return "()"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatArgument(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatKwargs(kwargs map[string]Argument) string {
	if len(kwargs) == 0 {
		return "{}"
	}
	return FormatArgument(map[string]Argument(kwargs))
}
