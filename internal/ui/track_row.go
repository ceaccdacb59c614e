package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/stellaris-music/internal/model"
	"github.com/ytget/stellaris-music/internal/platform"
)

// TrackRow shows one selected file with its tag title, path and conversion status
type TrackRow struct {
	widget.BaseWidget

	iconLabel  *widget.Label
	titleLabel *widget.Label
	pathLabel  *widget.Label
	statusText *canvas.Text
}

// NewTrackRow creates an empty track row; list rows are filled through Update
func NewTrackRow() *TrackRow {
	tr := &TrackRow{
		iconLabel:  widget.NewLabel(IconMusic),
		titleLabel: widget.NewLabel(""),
		pathLabel:  widget.NewLabel(""),
		statusText: canvas.NewText("", theme.Color(theme.ColorNameForeground)),
	}
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	tr.pathLabel.Truncation = fyne.TextTruncateEllipsis
	tr.pathLabel.Importance = widget.LowImportance
	tr.statusText.TextSize = theme.CaptionTextSize()
	tr.statusText.Alignment = fyne.TextAlignTrailing

	tr.ExtendBaseWidget(tr)
	return tr
}

// Update shows info and status; errMsg is shown instead of the path for failed files
func (tr *TrackRow) Update(info platform.TrackInfo, status model.TaskStatus, errMsg string) {
	tr.iconLabel.SetText(statusIcon(status))
	tr.titleLabel.SetText(info.DisplayName())

	detail := info.Path
	if status == model.TaskStatusError && errMsg != "" {
		detail = errMsg
	}
	tr.pathLabel.SetText(detail)

	tr.statusText.Text = status.String()
	tr.statusText.Color = theme.Color(statusColorName(status))
	tr.statusText.Refresh()
}

// CreateRenderer creates the widget renderer
func (tr *TrackRow) CreateRenderer() fyne.WidgetRenderer {
	// Fixed-width status column so rows line up
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(StatusLabelWidth, 0))
	status := container.NewStack(spacer, container.NewCenter(tr.statusText))

	text := container.NewVBox(tr.titleLabel, tr.pathLabel)
	content := container.NewBorder(nil, widget.NewSeparator(), tr.iconLabel, status, text)
	return &trackRowRenderer{row: tr, content: content}
}

// trackRowRenderer renders the track row widget
type trackRowRenderer struct {
	row     *TrackRow
	content *fyne.Container
}

// Layout arranges the components
func (r *trackRowRenderer) Layout(size fyne.Size) {
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	r.content.Resize(size)
}

// MinSize returns the minimum size
func (r *trackRowRenderer) MinSize() fyne.Size {
	min := r.content.MinSize()
	return fyne.NewSize(fyne.Max(min.Width, RowMinWidth), fyne.Max(min.Height, RowMinHeight))
}

// Refresh refreshes the renderer
func (r *trackRowRenderer) Refresh() {
	r.content.Refresh()
}

// Objects returns the container objects
func (r *trackRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content}
}

// Destroy cleans up the renderer
func (r *trackRowRenderer) Destroy() {}
