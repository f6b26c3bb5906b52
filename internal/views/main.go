package views

import (
	"zukus-desktop/internal/commands"
	"zukus-desktop/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainView is the shell window: the installed command set on the left and
// the invoke console on the right.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	commandList   *components.CommandList
	console       *components.Console
	statusBar     *components.StatusBar

	invokeHandler func(name, args string)
}

// NewMainView creates the main view and sets it as the window content
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.commandList = components.NewCommandList()
	mv.console = components.NewConsole()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	split := container.NewHSplit(
		container.NewBorder(widget.NewLabel("Backend commands"), nil, nil, nil, mv.commandList.GetContainer()),
		container.NewVScroll(mv.console.GetContainer()),
	)
	split.SetOffset(0.35)

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		split,
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects internal component events
func (mv *MainView) setupEventHandlers() {
	mv.commandList.SetSelectHandler(func(name string) {
		mv.console.SetCommand(name)
	})

	mv.console.SetInvokeHandler(func(name, args string) {
		if mv.invokeHandler != nil {
			mv.invokeHandler(name, args)
		}
	})
}

// SetInvokeHandler sets the handler for console invocations
func (mv *MainView) SetInvokeHandler(handler func(name, args string)) {
	mv.invokeHandler = handler
}

// SetCommands installs the aggregate shown in the list and offered by the console
func (mv *MainView) SetCommands(descs []commands.Descriptor) {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	mv.commandList.SetCommands(descs)
	mv.console.SetCommandNames(names)
	mv.statusBar.SetCommandCount(len(descs))
}

// BeginInvoke marks the console busy while a call is in flight
func (mv *MainView) BeginInvoke(name string) {
	mv.console.SetBusy(true)
	mv.statusBar.SetStatus("Invoking " + name + "...")
}

// ShowResult displays a finished call. Must run on the UI loop.
func (mv *MainView) ShowResult(text string, failed bool) {
	mv.console.SetBusy(false)
	mv.console.SetResult(text)
	if failed {
		mv.statusBar.SetStatus("Command failed")
	} else {
		mv.statusBar.SetStatus("Ready")
	}
}

// AbortInvoke clears the busy state of a call that never started and
// reports why
func (mv *MainView) AbortInvoke(err error) {
	mv.console.SetBusy(false)
	mv.statusBar.SetStatus("Command failed")
	mv.ShowError(err)
}

// SetVersion shows the application version in the status bar
func (mv *MainView) SetVersion(version string) {
	mv.statusBar.SetVersion(version)
}

// ShowError displays an error dialog over the main window
func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}

// CommandList returns the command list component
func (mv *MainView) CommandList() *components.CommandList {
	return mv.commandList
}

// Console returns the invoke console component
func (mv *MainView) Console() *components.Console {
	return mv.console
}

// StatusBar returns the status bar component
func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}
