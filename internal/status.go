package rpitop

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// frameSink keeps the last frame it was given
type frameSink struct {
	frame *ReadoutFrame
}

func (s *frameSink) Apply(frame ReadoutFrame) {
	s.frame = &frame
}

func (s *frameSink) IsInterfaceNil() bool {
	return s == nil
}

// Status performs a single readout pass and prints it as a table
func Status(ctx context.Context, cfg Config, baseURL *url.URL, fetcher Fetcher, w io.Writer) error {
	snapshotURL, err := seriesURL(baseURL, cfg.SnapshotEndpoint, "")
	if err != nil {
		return fmt.Errorf("invalid snapshot endpoint: %w", err)
	}

	sink := &frameSink{}
	updater, err := NewReadoutUpdater(snapshotURL, fetcher, sink)
	if err != nil {
		return err
	}
	if err := updater.Update(ctx); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, StatusTable(*sink.frame))
	return err
}

// StatusTable renders a frame as a Metric/Value/Headroom table
func StatusTable(frame ReadoutFrame) string {
	rows := make([][]string, 0, len(ReadoutOrder))
	for _, r := range ReadoutOrder {
		headroom := ""
		if bar, ok := frame.Bars[r.Bar]; ok {
			headroom = bar.String()
		}
		rows = append(rows, []string{r.Label, frame.Texts[r.Readout], headroom})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Metric", "Value", "Headroom").
		Rows(rows...).
		String()
}
