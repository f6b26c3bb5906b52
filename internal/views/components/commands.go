package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"zukus-desktop/internal/commands"
)

const emptyCommandsText = "No backend commands are exposed"

// CommandList shows the installed command set, one signature per row
type CommandList struct {
	container  *fyne.Container
	list       *widget.List
	emptyLabel *widget.Label
	descs      []commands.Descriptor
	onSelect   func(name string)
}

// NewCommandList creates a new command list component
func NewCommandList() *CommandList {
	cl := &CommandList{}

	cl.list = widget.NewList(
		func() int { return len(cl.descs) },
		func() fyne.CanvasObject { return widget.NewLabel("command") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(cl.descs[id].Signature())
		},
	)
	cl.list.OnSelected = func(id widget.ListItemID) {
		if cl.onSelect != nil && id < len(cl.descs) {
			cl.onSelect(cl.descs[id].Name)
		}
	}

	cl.emptyLabel = widget.NewLabel(emptyCommandsText)
	cl.container = container.NewStack(cl.list, cl.emptyLabel)
	cl.refresh()
	return cl
}

// SetCommands replaces the listed commands
func (cl *CommandList) SetCommands(descs []commands.Descriptor) {
	cl.descs = descs
	cl.refresh()
}

// SetSelectHandler sets the handler for row selection
func (cl *CommandList) SetSelectHandler(handler func(name string)) {
	cl.onSelect = handler
}

// Len returns the number of listed commands
func (cl *CommandList) Len() int {
	return len(cl.descs)
}

// EmptyVisible reports whether the empty-state label is shown
func (cl *CommandList) EmptyVisible() bool {
	return cl.emptyLabel.Visible()
}

// Select selects the row at index
func (cl *CommandList) Select(index int) {
	cl.list.Select(index)
}

// refresh toggles between the list and the empty state
func (cl *CommandList) refresh() {
	if len(cl.descs) == 0 {
		cl.list.Hide()
		cl.emptyLabel.Show()
	} else {
		cl.emptyLabel.Hide()
		cl.list.Show()
	}
	cl.list.Refresh()
}

// GetContainer returns the command list container
func (cl *CommandList) GetContainer() *fyne.Container {
	return cl.container
}
