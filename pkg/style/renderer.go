package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/jgoizueta/grass-gis/pkg/command"
	"github.com/jgoizueta/grass-gis/pkg/describe"
)

// RenderHistory renders the commands run in a session with their outcomes.
func RenderHistory(cmds []*command.Command) string {
	if len(cmds) == 0 {
		return MutedStyle.Render("No commands were run")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Session history") + "\n\n")

	for _, cmd := range cmds {
		marker := SuccessStyle.Render("ok")
		switch cmd.Outcome() {
		case command.OutcomeNonZeroExit, command.OutcomeLaunchFailure:
			marker = ErrorStyle.Render("failed")
		case command.OutcomePending:
			marker = MutedStyle.Render("pending")
		}
		fmt.Fprintf(&b, "%s %s %s\n", pterm.Info.Prefix.Text, CodeStyle.Render(cmd.String()), marker)
		if info := cmd.ErrorInfo(); info != "" {
			for _, line := range strings.Split(info, "\n") {
				fmt.Fprintf(&b, "    %s\n", MutedStyle.Render(line))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders a single error for the console.
func RenderError(err error) string {
	return ErrorStyle.Render("Error: ") + err.Error()
}

// RenderInterface renders a parsed tool interface description.
func RenderInterface(ti *describe.ToolInterface) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(ti.Name) + "\n")
	if ti.Description != "" {
		b.WriteString(ti.Description + "\n")
	}
	if len(ti.Keywords) > 0 {
		b.WriteString(MutedStyle.Render("keywords: "+strings.Join(ti.Keywords, ", ")) + "\n")
	}

	if len(ti.Parameters) > 0 {
		b.WriteString("\n" + TitleStyle.Render("Parameters") + "\n")
		for _, p := range ti.Parameters {
			attrs := []string{p.Type}
			if p.Required {
				attrs = append(attrs, "required")
			}
			if p.Multiple {
				attrs = append(attrs, "multiple")
			}
			fmt.Fprintf(&b, "  %s (%s)\n", CodeStyle.Render(p.Name), strings.Join(attrs, ", "))
			if p.Description != "" {
				fmt.Fprintf(&b, "      %s\n", p.Description)
			}
			if p.Default != "" {
				fmt.Fprintf(&b, "      %s\n", MutedStyle.Render("default: "+p.Default))
			}
			if len(p.Values) > 0 {
				fmt.Fprintf(&b, "      %s\n", MutedStyle.Render("values: "+strings.Join(p.Values, ", ")))
			}
		}
	}

	if len(ti.Flags) > 0 {
		b.WriteString("\n" + TitleStyle.Render("Flags") + "\n")
		for _, f := range ti.Flags {
			fmt.Fprintf(&b, "  %s\n", CodeStyle.Render("-"+f.Name))
			if f.Description != "" {
				fmt.Fprintf(&b, "      %s\n", f.Description)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
