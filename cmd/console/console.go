package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/couchcryptid/grainair/internal/dashboard"
	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/report"
)

const helpText = `commands:
  stations                      list monitoring stations
  select <id>                   select a station and show its details
  clear                         clear the selection
  map                           show the default map view and legend
  lang <en|hi>                  switch language
  report open                   open the incident report form
  report set location <text>    set the location
  report set description <text> set the description
  report set type <type>        smoke, dust, industrial, vehicle or other
  report capture                fill the location from the device position
  report submit                 submit the report
  report cancel                 close the form and discard the draft
  report show                   show the form
  help                          show this help
  quit                          exit`

var errUsage = errors.New("usage")

// console drives one dashboard session from line-oriented input. It stands in
// for the map, chart and toast collaborators by printing to out.
type console struct {
	session *dashboard.Session

	mu  sync.Mutex
	out io.Writer
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// recenter is the map collaborator's recenter command.
func (c *console) recenter(coord domain.Coordinate, zoom int) {
	c.printf("map: centre on %s at zoom %d\n", coord, zoom)
}

// Notify is the toast collaborator.
func (c *console) Notify(n report.Notification) {
	c.printf("[%s] %s: %s\n", n.Severity, n.Title, n.Body)
}

// run reads commands until EOF, "quit", or ctx is done.
func (c *console) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.printf("%s. Type \"help\" for commands.\n", c.session.T("appName"))
	for {
		c.printf("> ")
		if !scanner.Scan() {
			c.printf("\n")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		quit, err := c.exec(ctx, scanner.Text())
		if errors.Is(err, errUsage) {
			c.printf("%v\n", err)
		} else if err != nil {
			c.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (c *console) exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		c.printf("%s\n", helpText)
	case "stations":
		c.printStations()
	case "select":
		if len(fields) != 2 {
			return false, fmt.Errorf("%w: select <id>", errUsage)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("%w: select <id>", errUsage)
		}
		d, err := c.session.SelectStation(id)
		if err != nil {
			return false, err
		}
		c.printDetail(d)
	case "clear":
		c.session.ClearSelection()
		c.printf("selection cleared\n")
	case "map":
		c.printMap(c.session.MapView())
	case "lang":
		if len(fields) != 2 {
			return false, fmt.Errorf("%w: lang <en|hi>", errUsage)
		}
		if err := c.session.SetLanguage(fields[1]); err != nil {
			return false, err
		}
		c.printf("%s: %s\n", c.session.T("selectLanguage"), i18n.DisplayName(c.session.Language()))
		if d, ok, err := c.session.Detail(); err == nil && ok {
			c.printDetail(d)
		}
	case "report":
		return false, c.execReport(ctx, line, fields[1:])
	default:
		return false, fmt.Errorf("%w: unknown command %q, try help", errUsage, fields[0])
	}
	return false, nil
}

func (c *console) execReport(ctx context.Context, line string, args []string) error {
	wf := c.session.Report()
	if len(args) == 0 {
		return fmt.Errorf("%w: report <open|set|capture|submit|cancel|show>", errUsage)
	}

	switch args[0] {
	case "open":
		if err := wf.Open(); err != nil {
			return err
		}
		c.printForm(wf.Form())
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("%w: report set <location|description|type> <value>", errUsage)
		}
		value := restAfter(line, 3)
		switch args[1] {
		case "location":
			return wf.SetLocation(value)
		case "description":
			return wf.SetDescription(value)
		case "type":
			return wf.SetIncidentType(domain.IncidentType(value))
		default:
			return fmt.Errorf("%w: report set <location|description|type> <value>", errUsage)
		}
	case "capture":
		if err := wf.CaptureLocation(ctx); err != nil {
			var ge *report.GeolocationError
			if errors.As(err, &ge) {
				// Already surfaced as a notification.
				return nil
			}
			return err
		}
		c.printf("%s: %s\n", c.session.T("location"), wf.Draft().Location)
	case "submit":
		c.printf("%s\n", c.session.T("submitting"))
		err := wf.Submit(ctx)
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			c.printf("missing: %s\n", strings.Join(verrs.Fields(), ", "))
			return nil
		}
		if err != nil && wf.State().Phase == report.PhaseFailed {
			return nil
		}
		return err
	case "cancel":
		return wf.Cancel()
	case "show":
		c.printForm(wf.Form())
	default:
		return fmt.Errorf("%w: unknown report command %q", errUsage, args[0])
	}
	return nil
}

// restAfter returns line with its first n whitespace-separated words removed.
func restAfter(line string, n int) string {
	rest := strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
		if idx < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[idx:])
	}
	return rest
}

func (c *console) printStations() {
	for _, m := range c.session.Markers() {
		marker := " "
		if m.Selected {
			marker = "*"
		}
		c.printf("%s %2d  %-10s AQI %3d  %-10s %s\n", marker, m.ID, m.Name, m.AQI, c.session.T(string(m.Category)), m.Color)
	}
}

func (c *console) printDetail(d dashboard.Detail) {
	c.printf("%s  %s - AQI %d\n", d.Name, d.CategoryText, d.AQI)
	for _, r := range d.Readings {
		c.printf("  %-6s %6.1f %s\n", r.Label, r.Value, r.Unit)
	}
	c.printf("  %s: %s\n", d.AdviceTitle, d.HealthAdvice)
	if d.CropAlert {
		c.printf("  Crop Protection Alert: %s\n", d.CropAdvice)
	}
	c.printf("  Seasonal Advice: %s\n", d.SeasonalAdvice)
	c.printf("  %s\n", d.ChartTitle)
	for _, p := range d.Chart {
		width := int(p.AQI * 40 / float64(d.ChartMaxAQI))
		width = max(0, min(width, 40))
		c.printf("  %4s %6.1f %s\n", p.Label, p.AQI, strings.Repeat("#", width))
	}
}

func (c *console) printMap(v dashboard.MapView) {
	c.printf("centre %s zoom %d\n", v.Center, v.Zoom)
	for _, e := range v.Legend {
		c.printf("  %s %s\n", e.Color, e.Label)
	}
}

func (c *console) printForm(f report.Form) {
	if !f.Open {
		c.printf("report form closed\n")
		return
	}
	c.printf("%s [%s]\n", f.Title, f.State)
	for _, o := range f.Types {
		mark := " "
		if o.Selected {
			mark = "x"
		}
		c.printf("  [%s] %s (%s)\n", mark, o.Label, o.Value)
	}
	c.printf("  %s: %s\n", f.LocationText, f.Draft.Location)
	if f.Draft.PlaceName != "" {
		c.printf("    near %s\n", f.Draft.PlaceName)
	}
	c.printf("  %s: %s\n", f.DescriptionText, f.Draft.Description)
	c.printf("  [%s] [%s]\n", f.SubmitText, f.CancelText)
}
