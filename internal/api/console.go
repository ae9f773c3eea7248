package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"cornscan/internal/domain/entity"
)

const (
	msgModelClasses = "\nModel Classes:"
	msgResults      = "\nAnalysis Results:"
)

// Console выводит классы модели и результат анализа в текстовом виде или JSON
type Console struct {
	out    io.Writer
	asJSON bool
	colors map[entity.Status]*color.Color
}

// NewConsole создаёт вывод в out. noColor отключает ANSI-цвета.
func NewConsole(out io.Writer, asJSON, noColor bool) *Console {
	colors := map[entity.Status]*color.Color{
		entity.StatusSuccess:  color.New(color.FgGreen, color.Bold),
		entity.StatusRejected: color.New(color.FgYellow, color.Bold),
		entity.StatusError:    color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}
	return &Console{
		out:    out,
		asJSON: asJSON,
		colors: colors,
	}
}

// PrintClasses печатает индексы и метки классов модели. В режиме JSON молчит.
func (c *Console) PrintClasses(classes []string) error {
	if c.asJSON {
		return nil
	}
	if _, err := fmt.Fprintln(c.out, msgModelClasses); err != nil {
		return errors.Wrap(err, "print classes")
	}
	for idx, name := range classes {
		if _, err := fmt.Fprintf(c.out, "%d: %s\n", idx, name); err != nil {
			return errors.Wrap(err, "print classes")
		}
	}
	return nil
}

// PrintOutcome печатает результат анализа.
func (c *Console) PrintOutcome(o entity.Outcome) error {
	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(o), "encode outcome")
	}

	status := string(o.Status)
	if col, ok := c.colors[o.Status]; ok {
		status = col.Sprint(status)
	}

	lines := []string{
		msgResults,
		"Status: " + status,
		"Message: " + o.Message,
	}
	if o.IsSuccess() {
		lines = append(lines,
			"Disease: "+o.Disease,
			fmt.Sprintf("Confidence: %.1f%%", o.Confidence*100),
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(c.out, line); err != nil {
			return errors.Wrap(err, "print outcome")
		}
	}
	return nil
}
