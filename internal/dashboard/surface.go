package dashboard

import (
	"fmt"
	"strconv"

	"github.com/rivo/tview"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// ShowBusy pushes a busy popup for task id. Tasks are started from button
// handlers, which run on the UI goroutine, so the popup is added directly. Queuing
// it would wait on the event loop that is busy calling us.
func (d *Dashboard) ShowBusy(id, message string) {
	page := "busy-" + id
	modal := newModal(busyText(message, d.spinner), nil)
	d.busy = append(d.busy, busyModal{page: page, modal: modal, message: message})
	d.pages.AddPage(page, modal, true, true)
}

// DismissBusy removes the busy popup of task id, leaving other tasks' popups open
func (d *Dashboard) DismissBusy(id string) {
	page := "busy-" + id
	d.app.QueueUpdateDraw(func() {
		for i, b := range d.busy {
			if b.page == page {
				d.busy = append(d.busy[:i], d.busy[i+1:]...)
				d.pages.RemovePage(page)
				return
			}
		}
	})
}

// ShowResult opens a dismissible popup
func (d *Dashboard) ShowResult(title, body string) {
	d.app.QueueUpdateDraw(func() {
		d.popup(title + "\n\n" + body)
	})
}

// ShowError opens a dismissible error popup
func (d *Dashboard) ShowError(title, message string) {
	d.app.QueueUpdateDraw(func() {
		d.popup("error occurred\n\n" + title + ": " + message)
	})
}

func (d *Dashboard) popup(text string) {
	d.popups++
	page := "popup-" + strconv.Itoa(d.popups)
	modal := newModal(text, []string{"OK"})
	// Enter on OK and Esc both end up here
	modal.SetDoneFunc(func(int, string) {
		d.pages.RemovePage(page)
	})
	d.pages.AddPage(page, modal, true, true)
}

func newModal(text string, buttons []string) *tview.Modal {
	modal := tview.NewModal().SetText(text)
	if len(buttons) > 0 {
		modal.AddButtons(buttons)
	}
	return modal
}

// refresh redraws the status bar and advances the spinner of the top busy popup
func (d *Dashboard) refresh() {
	d.spinner = (d.spinner + 1) % len(spinnerFrames)
	d.status.SetText(d.statusText())
	if len(d.busy) > 0 {
		top := d.busy[len(d.busy)-1]
		top.modal.SetText(busyText(top.message, d.spinner))
	}
}

// Refresh schedules a status bar redraw. It is safe to call from any goroutine.
func (d *Dashboard) Refresh() {
	d.app.QueueUpdateDraw(d.refresh)
}

func (d *Dashboard) statusText() string {
	text := fmt.Sprintf("press Q to exit | escape to dismiss popups | version : %s", d.version)
	if d.runner != nil {
		if n := d.runner.InFlight(); n > 0 {
			text += fmt.Sprintf(" | %s %d running", spinnerFrames[d.spinner], n)
		}
	}
	return text
}

func busyText(message string, frame int) string {
	return "please wait\n\n" + message + " " + spinnerFrames[frame]
}
