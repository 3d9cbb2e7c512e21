// File: cmd/tplan/help_template.go
// Brief: Shared Cobra help template with per-command flag headings.

package main

import (
	"strings"

	"github.com/example/tplan/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	localFlagsHeadingKey = "localFlagsHeading"
	localUsageKey        = "localFlagUsages"
	inheritedUsageKey    = "inheritedFlagUsages"
)

const maxHelpWidth = 100

var headingCaser = cases.Title(language.Und)

const commandHelpTemplate = `{{with or .Long .Short}}{{. | trimTrailingWhitespaces}}{{end}}

Usage:
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}
{{if .HasAvailableSubCommands}}
Commands:
{{range .Commands}}{{if (and .IsAvailableCommand (ne .Name "help"))}}  {{rpad .Name .NamePadding}} {{.Short}}
{{end}}{{end}}{{end}}{{if .HasExample}}
Examples:
{{.Example}}
{{end}}
{{index .Annotations "localFlagsHeading"}}:
{{if .HasAvailableLocalFlags}}{{index .Annotations "localFlagUsages"}}{{else}}  (none){{end}}
{{if .HasAvailableInheritedFlags}}
Global Flags:
{{index .Annotations "inheritedFlagUsages"}}
{{end}}`

func decorateCommandHelp(cmd *cobra.Command, heading string) {
	if strings.TrimSpace(heading) == "" {
		heading = headingCaser.String(cmd.Name()) + " Flags"
	}
	cmd.SetHelpTemplate(commandHelpTemplate)
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c.Annotations == nil {
			c.Annotations = make(map[string]string)
		}
		width := ui.WidthOr(c.OutOrStdout(), maxHelpWidth)
		if width > maxHelpWidth {
			width = maxHelpWidth
		}
		c.Annotations[localFlagsHeadingKey] = heading
		c.Annotations[localUsageKey] = formatFlagUsages(c.LocalFlags(), width)
		c.Annotations[inheritedUsageKey] = formatFlagUsages(c.InheritedFlags(), width)
		defaultHelp(c, args)
	})
}

func formatFlagUsages(fs *pflag.FlagSet, width int) string {
	if fs == nil {
		return ""
	}
	usages := fs.FlagUsagesWrapped(width)
	usages = strings.ReplaceAll(usages, "\t", "  ")
	return strings.TrimRight(usages, "\n")
}
