package app

import (
	"context"
	"encoding/json"
	"fmt"

	"zukus-desktop/internal/bridge"
	"zukus-desktop/internal/logger"
	"zukus-desktop/internal/views"
)

// Handlers connects the console in the main view to the bridge.
type Handlers struct {
	ctx    context.Context
	bridge *bridge.Bridge
	view   *views.MainView
	logger logger.Logger
}

// NewHandlers creates the console handlers. Calls run under ctx and are
// cancelled with it.
func NewHandlers(ctx context.Context, b *bridge.Bridge, view *views.MainView, log logger.Logger) *Handlers {
	return &Handlers{
		ctx:    ctx,
		bridge: b,
		view:   view,
		logger: log,
	}
}

// HandleInvoke runs on the UI loop. The call itself is dispatched off the
// loop and its response is shown once it comes back.
func (h *Handlers) HandleInvoke(name, args string) {
	req, err := bridge.NewRequest(name, nil)
	if err != nil {
		h.view.ShowResult(err.Error(), true)
		return
	}
	if args != "" {
		if !json.Valid([]byte(args)) {
			h.view.ShowResult(fmt.Sprintf("%s: arguments are not valid JSON", bridge.KindInvalidArgs), true)
			return
		}
		req.Args = json.RawMessage(args)
	}

	h.view.BeginInvoke(name)

	err = h.bridge.Dispatch(h.ctx, req, func(resp bridge.Response) {
		h.view.ShowResult(FormatResponse(resp), !resp.OK)
	})
	if err != nil {
		h.logger.Error("Handlers", err, map[string]interface{}{"command": name})
		h.view.AbortInvoke(err)
	}
}

// FormatResponse renders a response for display.
func FormatResponse(resp bridge.Response) string {
	if !resp.OK {
		if resp.Error == nil {
			return string(bridge.KindFailed)
		}
		return resp.Error.Error()
	}
	if len(resp.Result) == 0 {
		return "null"
	}
	return string(resp.Result)
}
