// Package tui hosts a dom.Document inside a bubbletea program.
//
// The Host turns terminal input into document events: keys become keydown
// dispatches on the focused element, left clicks are hit tested against the
// rects recorded by the last render, and document timers become tea.Tick
// commands. Text inputs are edited through bubbles/textinput models that
// write back to the element's value attribute.
//
// # Rendering
//
// The Renderer draws the body top to bottom. Elements with role="dialog"
// are lifted out of the flow and composited as centred layers over the
// faded page, so a mounted modal.Modal shows on top of whatever the rest of
// the component draws.
//
//	host, err := tui.NewHost(app, tui.NewRenderer())
//	if err != nil {
//	    return err
//	}
//	_, err = tea.NewProgram(host, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
package tui
