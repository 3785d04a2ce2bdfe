package commands

import (
	"bytes"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/comfyops/comfyprov/internal/core/domain"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the outcome of the last provisioning run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			marker, err := c.components.Store.LastMarker()
			if err != nil {
				return err
			}
			if marker == nil {
				cmd.Println("no provisioning run recorded yet")
				return nil
			}
			cmd.Print(renderMarker(marker))
			return nil
		},
	}
}

func renderMarker(m *domain.Marker) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "last run:     %s (comfyprov %s)\n", m.Timestamp.Format("2006-01-02 15:04:05 MST"), m.RunVersion)
	fmt.Fprintf(&buf, "pip:          %s\n", okLabel(m.PipOK))
	fmt.Fprintf(&buf, "verified:     %s\n", okLabel(m.AllVerified))
	if m.Framework != "" {
		fmt.Fprintf(&buf, "framework:    %s\n", m.Framework)
	}
	if m.Compiler != "" {
		fmt.Fprintf(&buf, "compiler:     %s\n", m.Compiler)
	}
	if m.Frontend != "" {
		fmt.Fprintf(&buf, "frontend:     %s\n", m.Frontend)
	}
	if len(m.FailedPlugins) > 0 {
		fmt.Fprintf(&buf, "failed:       %v\n", m.FailedPlugins)
	}

	if len(m.Outcomes) > 0 {
		buf.WriteByte('\n')
		t := table.NewWriter()
		t.SetOutputMirror(&buf)
		t.AppendHeader(table.Row{"Name", "Kind", "Outcome", "Detail"})
		for _, e := range m.Outcomes {
			t.AppendRow(table.Row{e.Name, e.Kind, e.Outcome, e.Detail})
		}
		style := table.StyleLight
		style.Options.DrawBorder = false
		t.SetStyle(style)
		t.Render()
	}

	return buf.String()
}

func okLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAILED"
}
