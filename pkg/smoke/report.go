/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package smoke

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/unikorn-cloud/booker-e2e/test/api"
)

const (
	maxErrorLength = 200
)

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func resultString(passed bool) string {
	if passed {
		return "✓ pass"
	}

	return "✗ fail"
}

// errorSummary keeps the first line of a failure, gomega messages run over
// several.
func errorSummary(message string) string {
	message = strings.TrimSpace(message)

	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = strings.TrimSpace(message[:i]) + " ..."
	}

	if utf8.RuneCountInString(message) > maxErrorLength {
		message = text.Trim(message, maxErrorLength) + "..."
	}

	return message
}

// PrintResults writes a summary table of result to out.
func PrintResults(out io.Writer, runID string, result *api.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Booking Lifecycle Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{
		"#", "Step", "Duration", "Status", "Error",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Error", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for i, step := range result.Steps {
		t.AppendRow(table.Row{
			i + 1,
			step.Name,
			formatDuration(step.Duration),
			resultString(step.Passed),
			errorSummary(step.Error),
		})
	}

	if result.Passed {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("TOTAL %d, FAILED %d", len(result.Steps), result.Failed()),
		formatDuration(result.Duration),
		resultString(result.Passed),
		"run " + runID,
	})

	t.Render()
}
