package formatter

import (
	"encoding/csv"
	"io"
	"os"
)

type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{out: os.Stdout}
}

func (f *CSVFormatter) Format(data []CaseRow) error {
	w := csv.NewWriter(f.out)
	defer w.Flush()

	if err := w.Write(fullHeaders); err != nil {
		return err
	}
	for _, row := range data {
		if err := w.Write(row.record()); err != nil {
			return err
		}
	}
	return w.Error()
}
