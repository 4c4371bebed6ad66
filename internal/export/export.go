package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"flexmap/internal/common"
	"flexmap/internal/model"
)

// Format selects the output of Write.
type Format string

const (
	FormatTree  Format = "tree"
	FormatYAML  Format = "yaml"
	FormatDebug Format = "debug"
)

// ParseFormat validates a format name. Empty means FormatTree.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTree, nil
	case FormatTree, FormatYAML, FormatDebug:
		return f, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown format %q (expected tree, yaml or debug)", s))
	}
}

// Write renders roots to w in the given format.
func Write(w io.Writer, format Format, roots []*model.Instance, lines LineFunc) error {
	views := Build(roots, lines)

	switch format {
	case FormatTree, "":
		return writeTree(w, views)
	case FormatYAML:
		return writeYAML(w, views)
	case FormatDebug:
		cfg := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		cfg.Fdump(w, views)

		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown format %q", format))
	}
}

func writeTree(w io.Writer, views []View) error {
	var sb strings.Builder

	for _, v := range views {
		treeLines(&sb, v, 0)
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write tree").
			WithCause(err)
	}

	return nil
}

func treeLines(sb *strings.Builder, v View, depth int) {
	indent := strings.Repeat("  ", depth)

	head := v.Class
	if v.Label != "" {
		head += "(" + v.Label + ")"
	}

	if v.Line > 0 {
		head += fmt.Sprintf(" @%d", v.Line)
	}

	sb.WriteString(indent + head + "\n")

	for _, val := range v.Values {
		sb.WriteString(fmt.Sprintf("%s  %s: %s\n", indent, val.Feature, renderItems(val)))
	}

	for _, slot := range v.Slots {
		sb.WriteString(fmt.Sprintf("%s  %s:\n", indent, slot.Feature))

		for _, child := range slot.Items {
			treeLines(sb, child, depth+2)
		}
	}
}

func renderItems(v Value) string {
	if !v.Many {
		return strings.Join(v.Items, "")
	}

	return "[" + strings.Join(v.Items, ", ") + "]"
}

func writeYAML(w io.Writer, views []View) error {
	root := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range views {
		root.Content = append(root.Content, yamlNode(v))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(root); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode YAML").
			WithCause(err)
	}

	return enc.Close()
}

func yamlNode(v View) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalar("class"), scalar(v.Class))

	if v.Line > 0 {
		n.Content = append(n.Content, scalar("line"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v.Line)})
	}

	for _, val := range v.Values {
		if !val.Many {
			n.Content = append(n.Content, scalar(val.Feature), scalar(strings.Join(val.Items, "")))
			continue
		}

		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range val.Items {
			seq.Content = append(seq.Content, scalar(item))
		}

		n.Content = append(n.Content, scalar(val.Feature), seq)
	}

	for _, slot := range v.Slots {
		if !slot.Many && common.IsSingle(slot.Items) {
			n.Content = append(n.Content, scalar(slot.Feature), yamlNode(slot.Items[0]))
			continue
		}

		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range slot.Items {
			seq.Content = append(seq.Content, yamlNode(child))
		}

		n.Content = append(n.Content, scalar(slot.Feature), seq)
	}

	return n
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
