package cli

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/report"
)

var (
	elementsSource string
	elementsFrom   int
	elementsTo     int
)

// elementsCmd represents the elements command
var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List elements with electronegativities and oxidation states",
	Long: `Elements prints the element data the screening rules use, with the
oxidation states of the selected source.

Example:
  chemscreen elements --to 36
  chemscreen elements --source wiki --from 21 --to 30 -f json`,
	Args: cobra.NoArgs,
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
	elementsCmd.Flags().StringVarP(&elementsSource, "source", "s", "", "oxidation-state source or file (default from config)")
	elementsCmd.Flags().IntVar(&elementsFrom, "from", 1, "first proton number")
	elementsCmd.Flags().IntVar(&elementsTo, "to", 103, "last proton number")
}

func runElements(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	name := e.cfg.Validity.Source
	if cmd.Flags().Changed("source") {
		name = elementsSource
	}
	src, err := element.ParseSource(name)
	if err != nil {
		return err
	}
	if src.IsCaveated() {
		fmt.Fprint(os.Stderr, pterm.Warning.Sprintln(element.WikiCaveat))
	}

	rows, err := elementRows(e.screener.Provider(), src, elementsFrom, elementsTo)
	if err != nil {
		return err
	}
	return e.renderer.Elements(rows)
}

func elementRows(p *element.Provider, src element.Source, from, to int) ([]report.ElementRow, error) {
	symbols := p.OrderedElements(from, to)
	rows := make([]report.ElementRow, 0, len(symbols))
	for _, s := range symbols {
		el, err := p.Element(s)
		if err != nil {
			return nil, err
		}
		states, err := p.OxidationStates(s, src)
		if err != nil {
			return nil, err
		}

		row := report.ElementRow{
			Number:          el.Number,
			Symbol:          el.Symbol,
			Name:            el.Name,
			Valence:         el.Valence,
			OxidationStates: states,
		}
		if el.HasElectronegativity() {
			en := el.Electronegativity
			row.Electronegativity = &en
		}
		rows = append(rows, row)
	}
	return rows, nil
}
