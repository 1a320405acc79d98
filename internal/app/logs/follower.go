package logs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"mocha/internal/app/bus"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/components"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// Follower streams the merged, filtered view to a writer in no-UI mode.
// New entries print as they arrive; anything that invalidates already
// printed output (a truncated file, a filter change) prints a separator
// and the full view again.
type Follower struct {
	session   session.Manager
	eventBus  bus.Bus
	formatter *Formatter
	out       io.Writer

	printed int

	log logger.Logger
}

// NewFollower creates a no-UI stream follower writing to stdout
func NewFollower(s session.Manager, b bus.Bus, f *Formatter, log logger.Logger) *Follower {
	return &Follower{
		session:   s,
		eventBus:  b,
		formatter: f,
		out:       os.Stdout,
		log:       log.WithComponent("STREAM"),
	}
}

// Run prints the current view and then follows session events until the
// context is cancelled
func (f *Follower) Run(ctx context.Context) error {
	f.printBanner()
	f.printAll()

	events := f.eventBus.Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}

			f.handle(event)
		}
	}
}

// PrintOnce prints the current view without following
func (f *Follower) PrintOnce() {
	f.printBanner()
	f.printAll()
}

func (f *Follower) handle(event bus.Event) {
	switch event.Type {
	case bus.EventEntriesAppended:
		f.printNew()

	case bus.EventReadFailed:
		if data, ok := event.Data.(bus.ReadFailed); ok {
			fmt.Fprintln(f.out, components.ErrorStyle.Render(fmt.Sprintf("read failed: %s: %v", data.Name, data.Error)))
		}

	case bus.EventWatchStarted, bus.EventWatchStopped, bus.EventSelectionChanged:
		// No bearing on printed output

	default:
		f.printSeparator()
		f.printAll()
	}
}

// printNew prints entries appended past the already printed span
func (f *Follower) printNew() {
	visible := f.session.Visible()

	if len(visible) < f.printed {
		f.printSeparator()
		f.printAll()

		return
	}

	for _, e := range visible[f.printed:] {
		fmt.Fprint(f.out, f.formatter.FormatEntry(e))
	}

	f.printed = len(visible)
}

func (f *Follower) printAll() {
	visible := f.session.Visible()

	for _, e := range visible {
		fmt.Fprint(f.out, f.formatter.FormatEntry(e))
	}

	f.printed = len(visible)
}

func (f *Follower) printSeparator() {
	style := components.SeparatorStyle

	fmt.Fprintln(f.out, style.Render(strings.Repeat("─", f.termWidth())))
}

// printBanner writes a header naming the opened files and filters
func (f *Follower) printBanner() {
	files := f.session.Files()

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
	}

	showing := "all"
	if filters := f.session.Filters(); len(filters) > 0 {
		displays := make([]string, 0, len(filters))
		for _, flt := range filters {
			displays = append(displays, flt.Display)
		}

		showing = strings.Join(displays, ", ")
	}

	width := f.termWidth()

	muted := components.StatusStyle.Render
	bold := components.FilterChipStyle.Render

	fmt.Fprintln(f.out, components.RenderHeader(width, config.AppName, "v"+config.Version))
	fmt.Fprintln(f.out, " "+muted("files:")+" "+bold(strings.Join(names, ", ")))
	fmt.Fprintln(f.out, " "+muted("showing:")+" "+bold(showing))
	fmt.Fprintln(f.out, components.RenderLine(width))
}

func (f *Follower) termWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width < 40 {
		width = components.DefaultViewportWidth
	}

	return width
}
