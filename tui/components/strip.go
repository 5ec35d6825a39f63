package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/trim-timeline-cli/pkg/timeutil"
	"github.com/user/trim-timeline-cli/thumbs"
	"github.com/user/trim-timeline-cli/timeline"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// StripRowOffset is the number of lines above the first thumbnail row inside
// the rendered strip box (the tab header).
const StripRowOffset = 1

// StripState is everything the trim strip needs besides the engine.
type StripState struct {
	// Frames holds downscaled thumbnails by strip cell index.
	Frames map[int]thumbs.Cells
	// Rows is the thumbnail height in terminal rows.
	Rows int
	// Inset is the horizon inset in columns on each side of the trimmer.
	Inset int
	// Grabbed is the handle held by the keyboard, if any.
	Grabbed *timeline.HandleSide
}

// TrimStrip renders the thumbnail strip with the trimmer laid over it: dimmed
// thumbnails outside the handles, the handles themselves, the playback
// indicator and a label row with the range times.
// Output height is Rows + 3 lines.
func TrimStrip(e *timeline.Engine, state StripState, width int) string {
	inner := width - 2
	if inner < 8 || state.Rows < 1 {
		return ""
	}

	geom := e.Geometry()
	cfg := geom.Config()
	layout := e.Layout()
	scale := cfg.TrimmerScale()
	delay := layout.DelayBetweenFrames
	perFrame := layout.PerFrameWidth()
	length := e.VideoLength()

	leftX := geom.LeftHandleX()
	rightX := geom.RightHandleX()
	hw := cfg.HandleWidth
	panning := e.PanningTarget().Active()
	window, loading := e.PendingWindow()
	indicatorCol := -1
	if !panning {
		indicatorCol = int(math.Round(geom.IndicatorOrigin() + e.IndicatorOffset()))
	}

	handleStyle := styles.Handle
	grabbedStyle := styles.GrabbedHandle
	indicatorStyle := styles.Indicator
	emptyStyle := styles.EmptyCell

	rows := make([]strings.Builder, state.Rows)
	for s := 0; s < inner; s++ {
		x := float64(s - state.Inset)
		center := x + 0.5

		side, onHandle := geom.HandleAt(center)
		if onHandle {
			style := handleStyle
			if state.Grabbed != nil && *state.Grabbed == side {
				style = grabbedStyle
			}
			glyph := "▐"
			if side == timeline.RightHandle {
				glyph = "▌"
			}
			for r := range rows {
				rows[r].WriteString(style.Render(glyph))
			}
			continue
		}
		if s-state.Inset == indicatorCol {
			for r := range rows {
				rows[r].WriteString(indicatorStyle.Render("┃"))
			}
			continue
		}

		inside := center >= leftX+hw && center < rightX
		t := layout.HandleAbsoluteSeconds(center/scale, e.ScrollOffset(), scale)
		if delay <= 0 || t < 0 || t >= length {
			for r := range rows {
				rows[r].WriteString(" ")
			}
			continue
		}

		idx := int(t / delay)
		within := (t - float64(idx)*delay) / delay
		if within*perFrame > e.CellWidth(idx) {
			for r := range rows {
				rows[r].WriteString(" ")
			}
			continue
		}

		cells, ok := state.Frames[idx]
		if !ok || cells.Empty() {
			// Shade cells whose frame is on its way; the rest stay dotted.
			glyph := "·"
			if loading && t >= window.Start && t < window.Finish {
				glyph = "░"
			}
			if within < 1/perFrame {
				glyph = "▏"
			}
			for r := range rows {
				rows[r].WriteString(emptyStyle.Render(glyph))
			}
			continue
		}

		px := int(within * float64(cells.Cols))
		if px >= cells.Cols {
			px = cells.Cols - 1
		}
		for r := range rows {
			top := cells.At(px, r*2)
			bottom := cells.At(px, r*2+1)
			if !inside {
				top, bottom = dim(top), dim(bottom)
			}
			rows[r].WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render("▀"))
		}
	}

	lines := make([]string, 0, state.Rows+1)
	for r := range rows {
		lines = append(lines, rows[r].String())
	}
	lines = append(lines, rangeLabels(e.CurrentTrimRange(), state.Inset, leftX, rightX+hw, inner))

	title := "Trim"
	if target := e.PanningTarget(); target.Active() {
		title = fmt.Sprintf("Trim · %s", target)
	}
	return TabBox(title, lines, width)
}

// rangeLabels places the start time under the left handle, the finish time
// ending at the right handle and the duration centred between them.
func rangeLabels(r timeline.TrimRange, inset int, leftX, rightEdge float64, width int) string {
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	durStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	type label struct {
		col   int
		text  string
		style lipgloss.Style
	}
	fit := func(text string, col int) label {
		n := lipgloss.Width(text)
		if col+n > width {
			col = width - n
		}
		if col < 0 {
			col = 0
		}
		return label{col: col, text: text}
	}

	start := fit(timeutil.FormatPrecise(r.Start), inset+int(math.Round(leftX)))
	start.style = timeStyle
	finishText := timeutil.FormatPrecise(r.Finish)
	finish := fit(finishText, inset+int(math.Round(rightEdge))-lipgloss.Width(finishText))
	finish.style = timeStyle

	labels := []label{start}
	startEnd := start.col + lipgloss.Width(start.text)
	if finish.col >= startEnd+1 {
		durText := fmt.Sprintf("%.2fs", r.Duration())
		if mid := (startEnd + finish.col - len(durText)) / 2; mid > startEnd && mid+len(durText) < finish.col {
			labels = append(labels, label{col: mid, text: durText, style: durStyle})
		}
		labels = append(labels, finish)
	}

	var b strings.Builder
	col := 0
	for _, l := range labels {
		if l.col > col {
			b.WriteString(strings.Repeat(" ", l.col-col))
			col = l.col
		}
		b.WriteString(l.style.Render(l.text))
		col += lipgloss.Width(l.text)
	}
	return b.String()
}

func dim(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: c.A}
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
