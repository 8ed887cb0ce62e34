package typetag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format renders a canonical type value as Move source syntax:
// `u64`, `vector<u8>`, `&mut T0`, `0x2::coin::Coin<0x2::sui::SUI>`.
// Shapes it does not understand are rendered as `?`.
func Format(v any) string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func format(sb *strings.Builder, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		sb.WriteByte('?')
		return
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "vector":
		sb.WriteString("vector<")
		format(sb, m["type"])
		sb.WriteByte('>')
	case "ref":
		sb.WriteByte('&')
		if mut, _ := m["mutable"].(bool); mut {
			sb.WriteString("mut ")
		}
		format(sb, m["to"])
	case "type_param":
		fmt.Fprintf(sb, "T%s", indexString(m["index"]))
	case "datatype":
		addr, _ := m["address"].(string)
		mod, _ := m["module"].(string)
		name, _ := m["name"].(string)
		tag := Tag{Address: addr, Module: mod, Name: name}.Short()
		if tag == "" {
			tag = "?"
		}
		sb.WriteString(tag)
		args, _ := m["type_args"].([]any)
		if len(args) == 0 {
			return
		}
		sb.WriteByte('<')
		for i, a := range args {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, a)
		}
		sb.WriteByte('>')
	case "":
		sb.WriteByte('?')
	default:
		sb.WriteString(kind)
	}
}

func indexString(v any) string {
	switch x := v.(type) {
	case int:
		return fmt.Sprint(x)
	case int64:
		return fmt.Sprint(x)
	case uint64:
		return fmt.Sprint(x)
	case float64:
		return fmt.Sprint(int64(x))
	case json.Number:
		return x.String()
	default:
		return "?"
	}
}
