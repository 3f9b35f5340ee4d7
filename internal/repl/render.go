package repl

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/vaultpass/toolbox/internal/model"
)

func newTable(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderAddress prints an address as a two-column table.
func RenderAddress(out io.Writer, a model.Address) {
	t := newTable(out, "Address Found")
	t.AppendRows([]table.Row{
		{"CEP", a.CEP},
		{"Street", a.Street},
		{"Neighborhood", a.Neighborhood},
		{"City", a.City},
		{"State", a.State},
	})
	t.Render()
}

// RenderQuote prints a BRL quote with four decimal places.
func RenderQuote(out io.Writer, q model.Quote) {
	t := newTable(out, fmt.Sprintf("Quote %s/BRL", q.Currency))
	t.AppendRows([]table.Row{
		{"Current (Bid)", fmt.Sprintf("R$ %.4f", q.Bid)},
		{"Day High", fmt.Sprintf("R$ %.4f", q.High)},
		{"Day Low", fmt.Sprintf("R$ %.4f", q.Low)},
		{"Last Update", q.CreatedAt},
	})
	t.Render()
}

// RenderProfile prints a user profile.
func RenderProfile(out io.Writer, p model.Profile) {
	t := newTable(out, "Generated Profile")
	t.AppendRows([]table.Row{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Country", p.Country},
	})
	if p.Source == model.ProfileSourceOffline {
		t.AppendFooter(table.Row{"Source", "offline"})
	}
	t.Render()
}
