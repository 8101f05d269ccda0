package formatter

import (
	"io"
	"os"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	out io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{out: os.Stdout}
}

func (f *JSONFormatter) Format(data []CaseRow) error {
	enc := sonic.ConfigDefault.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
