package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain renders root in query.c's QueryNode::DumpSds textual dump format.
// fieldName resolves a single field-mask bit to its name for display; pass
// nil to render raw mask integers instead, the same fallback DumpSds takes
// when no IndexSpec is available.
func Explain(root *Node, fieldName func(bit uint64) string) string {
	if root == nil {
		return "NULL"
	}
	var s strings.Builder
	root.dumpSds(0, &s, fieldName)
	return s.String()
}

func pad(s *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		s.WriteString("  ")
	}
}

func (n *Node) dumpSds(depth int, s *strings.Builder, fieldName func(uint64) string) {
	pad(s, depth)

	if n.Options.FieldMask == 0 {
		s.WriteString("@NULL:")
	} else if n.Options.FieldMask != AllFields && n.Kind != KindNumeric && n.Kind != KindGeo && n.Kind != KindIdList {
		s.WriteString("@")
		s.WriteString(fieldMaskNames(n.Options.FieldMask, fieldName))
		s.WriteString(":")
	}

	s.WriteString(n.Kind.String())
	s.WriteString(" {")
	n.writePayload(depth, s, fieldName)
	s.WriteString("}")
	n.writeAttributes(s)
	s.WriteString("\n")
}

func (n *Node) writePayload(depth int, s *strings.Builder, fieldName func(uint64) string) {
	switch n.Kind {
	case KindToken:
		s.WriteString(n.Tok.Str)

	case KindPrefix:
		s.WriteString(n.Pattern)
		s.WriteString("*")

	case KindFuzzy:
		fmt.Fprintf(s, "%%%s%%~%d", n.Pattern, n.MaxEdits)

	case KindLexRange:
		s.WriteString(lexRangeText(n))

	case KindNumeric:
		fmt.Fprintf(s, "%s %s %s %s %s", formatFloat(n.Numeric.Min), inclOp(n.Numeric.InclMin),
			n.Numeric.Field, inclOp(n.Numeric.InclMax), formatFloat(n.Numeric.Max))

	case KindGeo:
		fmt.Fprintf(s, "%s WITHIN %s%s OF (%s, %s)", n.Geo.Field, formatFloat(n.Geo.Radius), n.Geo.Unit,
			formatFloat(n.Geo.Lat), formatFloat(n.Geo.Lon))

	case KindIdList:
		for i, id := range n.IDs {
			if i > 0 {
				s.WriteString(" ")
			}
			fmt.Fprintf(s, "%d", id)
		}

	case KindWildcard:
		// no payload

	case KindTag:
		s.WriteString("@")
		s.WriteString(n.Field)
		s.WriteString("\n")
		for _, c := range n.Children {
			c.dumpSds(depth+1, s, fieldName)
		}
		pad(s, depth)

	default: // Phrase, Union, Not, Optional
		s.WriteString("\n")
		for _, c := range n.Children {
			c.dumpSds(depth+1, s, fieldName)
		}
		pad(s, depth)
	}
}

func (n *Node) writeAttributes(s *strings.Builder) {
	o := n.Options
	if o.Weight == 1 && o.MaxSlop == -1 && !o.InOrder {
		return
	}
	s.WriteString(" => {")
	if o.Weight != 1 {
		fmt.Fprintf(s, " $weight: %g;", o.Weight)
	}
	if o.MaxSlop != -1 {
		fmt.Fprintf(s, " $slop: %d;", o.MaxSlop)
	}
	if o.InOrder || o.MaxSlop != -1 {
		fmt.Fprintf(s, " $inorder: %t;", o.InOrder)
	}
	s.WriteString(" }")
}

func fieldMaskNames(mask uint64, fieldName func(uint64) string) string {
	if fieldName == nil {
		return strconv.FormatUint(mask, 10)
	}
	var parts []string
	for i := 0; i < 64; i++ {
		bit := uint64(1) << uint(i)
		if mask&bit == 0 {
			continue
		}
		name := fieldName(bit)
		if name == "" {
			name = "n/a"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "|")
}

func inclOp(inclusive bool) string {
	if inclusive {
		return "<="
	}
	return "<"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func lexRangeText(n *Node) string {
	begin, end := "-inf", "+inf"
	if n.Begin != nil {
		begin = *n.Begin
	}
	if n.End != nil {
		end = *n.End
	}
	lo, hi := "[", "]"
	if !n.InclBegin {
		lo = "("
	}
	if !n.InclEnd {
		hi = ")"
	}
	return lo + begin + " " + end + hi
}
