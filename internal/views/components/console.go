package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Console lets the user invoke a command by name with JSON arguments
type Console struct {
	container    *fyne.Container
	nameEntry    *widget.SelectEntry
	argsEntry    *widget.Entry
	invokeButton *widget.Button
	resultLabel  *widget.Label
	onInvoke     func(name, args string)
}

// NewConsole creates a new invoke console component
func NewConsole() *Console {
	c := &Console{}
	c.createComponents()
	c.buildLayout()
	return c
}

// createComponents initializes console widgets
func (c *Console) createComponents() {
	c.nameEntry = widget.NewSelectEntry(nil)
	c.nameEntry.SetPlaceHolder("command name")

	c.argsEntry = widget.NewMultiLineEntry()
	c.argsEntry.SetPlaceHolder(`{"name": "value"}`)

	c.invokeButton = widget.NewButton("Invoke", c.invoke)

	c.resultLabel = widget.NewLabel("")
	c.resultLabel.Wrapping = fyne.TextWrapWord
}

// buildLayout constructs the console layout
func (c *Console) buildLayout() {
	c.container = container.NewVBox(
		widget.NewLabel("Command"),
		c.nameEntry,
		widget.NewLabel("Arguments"),
		c.argsEntry,
		c.invokeButton,
		widget.NewSeparator(),
		c.resultLabel,
	)
}

// invoke forwards the entered command to the invoke handler
func (c *Console) invoke() {
	name := strings.TrimSpace(c.nameEntry.Text)
	if name == "" || c.onInvoke == nil {
		return
	}
	c.onInvoke(name, strings.TrimSpace(c.argsEntry.Text))
}

// SetInvokeHandler sets the handler for invoke requests
func (c *Console) SetInvokeHandler(handler func(name, args string)) {
	c.onInvoke = handler
}

// SetCommandNames updates the names offered in the command entry
func (c *Console) SetCommandNames(names []string) {
	c.nameEntry.SetOptions(names)
}

// SetCommand fills the command entry
func (c *Console) SetCommand(name string) {
	c.nameEntry.SetText(name)
}

// Command returns the entered command name
func (c *Console) Command() string {
	return c.nameEntry.Text
}

// SetArgs fills the arguments entry
func (c *Console) SetArgs(args string) {
	c.argsEntry.SetText(args)
}

// SetBusy disables the invoke button while a call is in flight
func (c *Console) SetBusy(busy bool) {
	if busy {
		c.invokeButton.Disable()
	} else {
		c.invokeButton.Enable()
	}
}

// Busy reports whether a call is in flight
func (c *Console) Busy() bool {
	return c.invokeButton.Disabled()
}

// SetResult displays the result of the last call
func (c *Console) SetResult(text string) {
	c.resultLabel.SetText(text)
}

// Result returns the displayed result
func (c *Console) Result() string {
	return c.resultLabel.Text
}

// InvokeButton returns the invoke button
func (c *Console) InvokeButton() *widget.Button {
	return c.invokeButton
}

// GetContainer returns the console container
func (c *Console) GetContainer() *fyne.Container {
	return c.container
}
