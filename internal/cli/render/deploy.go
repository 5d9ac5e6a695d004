package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

var (
	labelStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgGreen, color.Bold)
)

// DeployResultView is the serialized form of a pipeline result
type DeployResultView struct {
	Network              string `json:"network" yaml:"network"`
	ChainID              uint64 `json:"chainId" yaml:"chainId"`
	Contract             string `json:"contract" yaml:"contract"`
	Stage                string `json:"stage" yaml:"stage"`
	Proxy                string `json:"proxy" yaml:"proxy"`
	Implementation       string `json:"implementation" yaml:"implementation"`
	ImplementationTxHash string `json:"implementationTxHash" yaml:"implementationTxHash"`
	ProxyTxHash          string `json:"proxyTxHash" yaml:"proxyTxHash"`
	InitTxHash           string `json:"initTxHash" yaml:"initTxHash"`
	RecordPath           string `json:"recordPath" yaml:"recordPath"`
	PreviousAddress      string `json:"previousAddress,omitempty" yaml:"previousAddress,omitempty"`
}

// NewDeployResultView flattens a result into printable fields
func NewDeployResultView(result *usecase.DeployProxyResult) DeployResultView {
	return DeployResultView{
		Network:              result.Target.Network,
		ChainID:              result.Target.ChainID,
		Contract:             result.Contract,
		Stage:                string(result.Stage),
		Proxy:                result.ProxyAddress.Hex(),
		Implementation:       result.ImplementationAddress.Hex(),
		ImplementationTxHash: result.ImplementationTxHash.Hex(),
		ProxyTxHash:          result.ProxyTxHash.Hex(),
		InitTxHash:           result.InitTxHash.Hex(),
		RecordPath:           result.RecordPath,
		PreviousAddress:      result.PreviousAddress,
	}
}

// DeployRenderer renders a finished deployment
type DeployRenderer struct {
	out    io.Writer
	format string
}

// NewDeployRenderer creates a renderer for text, json or yaml
func NewDeployRenderer(out io.Writer, format string) *DeployRenderer {
	return &DeployRenderer{out: out, format: format}
}

// Render writes the result in the configured format
func (r *DeployRenderer) Render(result *usecase.DeployProxyResult) error {
	view := NewDeployResultView(result)

	switch r.format {
	case "json":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		return r.renderText(view)
	default:
		return fmt.Errorf("unsupported output format %q", r.format)
	}
}

func (r *DeployRenderer) renderText(view DeployResultView) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{PaddingRight: "  "}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}})

	rows := [][2]string{
		{"Contract", view.Contract},
		{"Network", fmt.Sprintf("%s (%d)", view.Network, view.ChainID)},
		{"Proxy", addressStyle.Sprint(view.Proxy)},
		{"Implementation", view.Implementation},
		{"Init tx", view.InitTxHash},
		{"Record", view.RecordPath},
	}
	if view.PreviousAddress != "" {
		rows = append(rows, [2]string{"Replaced", view.PreviousAddress})
	}
	for _, row := range rows {
		t.AppendRow(table.Row{labelStyle.Sprint(row[0]), row[1]})
	}

	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

var _ Renderer[*usecase.DeployProxyResult] = (*DeployRenderer)(nil)
