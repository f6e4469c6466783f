package commands

import (
	"fmt"
	"io"
	"os"

	"leadboard/internal/model"
	"leadboard/internal/pipeline"

	"github.com/fatih/color"
)

func init() {
	// Users can disable with NO_COLOR
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	bold   = color.New(color.Bold)
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	faint  = color.New(color.Faint)
)

var platformColor = map[string]*color.Color{
	model.PlatformInstagram: color.New(color.FgMagenta),
	model.PlatformFacebook:  color.New(color.FgBlue),
}

func printBoard(w io.Writer, b pipeline.Board, dropped []model.Lead) {
	for _, s := range model.Stages {
		leads := b.Column(s)
		bold.Fprintf(w, "%s ", s.ColumnTitle())
		faint.Fprintf(w, "(%s, %d)\n", s.ColumnID(), len(leads))
		if len(leads) == 0 {
			faint.Fprintln(w, "  (empty)")
		}
		for i, lead := range leads {
			fmt.Fprintf(w, "  %2d. ", i)
			cyan.Fprintf(w, "#%d", lead.ID)
			fmt.Fprintf(w, " %s", lead.FullName)
			if lead.City != "" {
				fmt.Fprintf(w, ", %s", lead.City)
			}
			if c, ok := platformColor[lead.Platform]; ok {
				c.Fprintf(w, " [%s]", lead.Platform)
			} else if lead.Platform != "" {
				fmt.Fprintf(w, " [%s]", lead.Platform)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
	if len(dropped) > 0 {
		yellow.Fprintf(w, "⚠️  %d lead(s) without a pipeline stage:", len(dropped))
		for _, lead := range dropped {
			fmt.Fprintf(w, " #%d(%d)", lead.ID, int(lead.Stage))
		}
		fmt.Fprintln(w)
	}
}

func boardColumns(b pipeline.Board) map[string][]model.Lead {
	out := make(map[string][]model.Lead, model.StageCount)
	for _, s := range model.Stages {
		out[s.ColumnID()] = b.Column(s)
	}
	return out
}

// printError writes a red title and an explanation to stderr and returns an
// error for cobra.
func printError(title string, err error) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	fmt.Fprintf(os.Stderr, "%v\n", err)
	return fmt.Errorf("%s: %w", title, err)
}
