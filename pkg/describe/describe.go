// Package describe parses the self-description GRASS modules emit with
// --interface-description: an XML document listing the tool's parameters
// and flags.
package describe

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/jgoizueta/grass-gis/pkg/command"
	"github.com/jgoizueta/grass-gis/pkg/errors"
	"github.com/jgoizueta/grass-gis/pkg/session"
)

// Parameter is one key=value option of a tool.
type Parameter struct {
	Name        string
	Type        string
	Label       string
	Description string
	Default     string
	Required    bool
	Multiple    bool
	Values      []string
}

// Flag is one dash-flag of a tool.
type Flag struct {
	Name        string
	Label       string
	Description string
}

// ToolInterface is the parsed interface description of one GRASS module.
type ToolInterface struct {
	Name        string
	Label       string
	Description string
	Keywords    []string
	Parameters  []Parameter
	Flags       []Flag
}

// Describe runs the tool with --interface-description inside the session
// and parses the emitted XML. The invocation is recorded in the session
// history like any other command.
func Describe(c *session.Context, tool string) (*ToolInterface, error) {
	cmd, err := c.Run(tool, command.Flag("-interface-description"))
	if err != nil {
		return nil, err
	}
	if cmd.Failed() {
		return nil, errors.Newf(errors.ErrDescribeParse,
			"%s did not produce an interface description: %s", tool, cmd.ErrorInfo())
	}
	return Parse([]byte(cmd.Result().Stdout))
}

// Parse decodes an interface-description XML document.
func Parse(data []byte) (*ToolInterface, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrDescribeParse, "invalid interface description")
	}

	task := doc.SelectElement("task")
	if task == nil {
		return nil, errors.New(errors.ErrDescribeParse, "missing task element")
	}

	ti := &ToolInterface{
		Name:        task.SelectAttrValue("name", ""),
		Label:       elementText(task, "label"),
		Description: elementText(task, "description"),
	}
	if kw := elementText(task, "keywords"); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				ti.Keywords = append(ti.Keywords, k)
			}
		}
	}

	for _, el := range task.SelectElements("parameter") {
		p := Parameter{
			Name:        el.SelectAttrValue("name", ""),
			Type:        el.SelectAttrValue("type", ""),
			Label:       elementText(el, "label"),
			Description: elementText(el, "description"),
			Default:     elementText(el, "default"),
			Required:    el.SelectAttrValue("required", "no") == "yes",
			Multiple:    el.SelectAttrValue("multiple", "no") == "yes",
		}
		if values := el.SelectElement("values"); values != nil {
			for _, v := range values.SelectElements("value") {
				if name := elementText(v, "name"); name != "" {
					p.Values = append(p.Values, name)
				}
			}
		}
		ti.Parameters = append(ti.Parameters, p)
	}

	for _, el := range task.SelectElements("flag") {
		ti.Flags = append(ti.Flags, Flag{
			Name:        el.SelectAttrValue("name", ""),
			Label:       elementText(el, "label"),
			Description: elementText(el, "description"),
		})
	}

	return ti, nil
}

func elementText(parent *etree.Element, name string) string {
	if el := parent.SelectElement(name); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
