package views

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"zukus-desktop/internal/commands"
)

func TestEmptyCommandSet(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	view := NewMainView(a.NewWindow("zukus"))
	view.SetCommands(nil)

	assert.True(t, view.CommandList().EmptyVisible())
	assert.Equal(t, "Commands: 0", view.StatusBar().GetCommandCount())
}

func TestCommandSelectionFillsConsole(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	view := NewMainView(a.NewWindow("zukus"))
	view.SetCommands([]commands.Descriptor{
		{Name: "greet", Params: []commands.Param{{Name: "name", Type: "string"}}, Returns: "string"},
		{Name: "ping", Returns: "string"},
	})

	assert.False(t, view.CommandList().EmptyVisible())
	assert.Equal(t, 2, view.CommandList().Len())

	view.CommandList().Select(1)
	assert.Equal(t, "ping", view.Console().Command())
}

func TestInvokeButtonCallsHandler(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	view := NewMainView(a.NewWindow("zukus"))

	var gotName, gotArgs string
	view.SetInvokeHandler(func(name, args string) {
		gotName, gotArgs = name, args
		view.BeginInvoke(name)
	})

	view.Console().SetCommand(" greet ")
	view.Console().SetArgs(`{"name":"Martisa"}`)
	test.Tap(view.Console().InvokeButton())

	assert.Equal(t, "greet", gotName)
	assert.Equal(t, `{"name":"Martisa"}`, gotArgs)
	assert.True(t, view.Console().Busy())

	view.ShowResult(`"Hello, Martisa!"`, false)
	assert.False(t, view.Console().Busy())
	assert.Equal(t, `"Hello, Martisa!"`, view.Console().Result())
	assert.Equal(t, "Ready", view.StatusBar().GetStatus())
}

func TestInvokeIgnoresBlankName(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	view := NewMainView(a.NewWindow("zukus"))
	called := false
	view.SetInvokeHandler(func(string, string) { called = true })

	test.Tap(view.Console().InvokeButton())
	assert.False(t, called)
}

func TestShowResultFailure(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	view := NewMainView(a.NewWindow("zukus"))
	view.ShowResult("not_found: command not found: roll", true)

	assert.Equal(t, "Command failed", view.StatusBar().GetStatus())
}

func TestAbortInvokeShowsErrorDialog(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := a.NewWindow("zukus")
	view := NewMainView(w)
	view.BeginInvoke("ping")

	view.AbortInvoke(errors.New("bridge is closed"))

	assert.False(t, view.Console().Busy())
	assert.Equal(t, "Command failed", view.StatusBar().GetStatus())
	assert.NotNil(t, w.Canvas().Overlays().Top())
}
