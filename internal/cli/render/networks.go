package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the configured networks as a table
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints]")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Network", "Chain ID", "Record", "Status"})

	for _, network := range result.Networks {
		chainID := "-"
		status := color.New(color.FgGreen).Sprint("ok")
		if network.Error != nil {
			status = color.New(color.FgRed).Sprint(network.Error.Error())
		} else if network.Network != nil {
			chainID = strconv.FormatUint(network.Network.ChainID, 10)
		}
		t.AppendRow(table.Row{network.Name, chainID, "." + network.Name + ".env", status})
	}

	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
