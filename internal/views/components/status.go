package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and the size of the command surface
type StatusBar struct {
	container    *fyne.Container
	statusLabel  *widget.Label
	commandCount *widget.Label
	versionLabel *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.commandCount = widget.NewLabel("Commands: 0")
	sb.versionLabel = widget.NewLabel("")
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.commandCount,
		widget.NewSeparator(),
		sb.versionLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetCommandCount updates the number of exposed commands
func (sb *StatusBar) SetCommandCount(n int) {
	sb.commandCount.SetText(fmt.Sprintf("Commands: %d", n))
}

// GetCommandCount returns the command count text
func (sb *StatusBar) GetCommandCount() string {
	return sb.commandCount.Text
}

// SetVersion updates the version label
func (sb *StatusBar) SetVersion(version string) {
	sb.versionLabel.SetText(version)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
