package ui

import (
	"fmt"

	"fyne.io/fyne/v2/widget"
)

const DefaultMaxLogMessages = 100

// ActivityLog keeps a bounded list of status messages and drives the
// label/buttons that page through them in the settings tab.
type ActivityLog struct {
	messages     []string
	currentIndex int
	maxMessages  int

	label   *widget.Label
	upBtn   *widget.Button
	downBtn *widget.Button
}

func NewActivityLog(label *widget.Label, upBtn, downBtn *widget.Button, maxMessages int) *ActivityLog {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxLogMessages
	}
	return &ActivityLog{
		messages:     make([]string, 0, maxMessages),
		currentIndex: -1,
		maxMessages:  maxMessages,
		label:        label,
		upBtn:        upBtn,
		downBtn:      downBtn,
	}
}

// Add appends a message, trimming the oldest past the bound, and jumps
// the view to it. Must be called on the UI thread.
func (al *ActivityLog) Add(message string) {
	if al.label == nil {
		return
	}
	al.messages = append(al.messages, message)
	if len(al.messages) > al.maxMessages {
		al.messages = al.messages[len(al.messages)-al.maxMessages:]
	}
	al.currentIndex = len(al.messages) - 1
	al.updateDisplay()
}

func (al *ActivityLog) updateDisplay() {
	if al.label == nil || al.upBtn == nil || al.downBtn == nil {
		return
	}
	if len(al.messages) == 0 {
		al.label.SetText("")
		al.upBtn.Disable()
		al.downBtn.Disable()
		return
	}

	if al.currentIndex < 0 {
		al.currentIndex = 0
	} else if al.currentIndex >= len(al.messages) {
		al.currentIndex = len(al.messages) - 1
	}

	al.label.SetText(fmt.Sprintf("[%d/%d] %s", al.currentIndex+1, len(al.messages), al.messages[al.currentIndex]))
	if al.currentIndex <= 0 {
		al.upBtn.Disable()
	} else {
		al.upBtn.Enable()
	}
	if al.currentIndex >= len(al.messages)-1 {
		al.downBtn.Disable()
	} else {
		al.downBtn.Enable()
	}
}

func (al *ActivityLog) ShowPrevious() {
	if len(al.messages) == 0 || al.currentIndex <= 0 {
		return
	}
	al.currentIndex--
	al.updateDisplay()
}

func (al *ActivityLog) ShowNext() {
	if len(al.messages) == 0 || al.currentIndex >= len(al.messages)-1 {
		return
	}
	al.currentIndex++
	al.updateDisplay()
}
