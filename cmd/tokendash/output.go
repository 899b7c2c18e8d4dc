package main

import (
	"github.com/pterm/pterm"
)

type row struct {
	label string
	value string
}

func printRows(title string, rows ...row) error {
	pterm.DefaultSection.Println(title)
	data := make(pterm.TableData, 0, len(rows))
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		data = append(data, []string{r.label, r.value})
	}
	return pterm.DefaultTable.WithHasHeader(false).WithData(data).Render()
}
