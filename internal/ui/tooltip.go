package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/LoadTwin/internal/model"
)

// Hover hints need the window tooltip layer installed by Build.

func newIconButtonWithTooltip(icon fyne.Resource, tip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tip)
	return btn
}

// newContainerButton is a left-aligned list entry whose hover hint gives the
// interior dimensions of c.
func newContainerButton(title string, c model.Container, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButton(title, tapped)
	btn.Alignment = widget.ButtonAlignLeading
	btn.SetToolTip(fmt.Sprintf("%s: %.2f × %.2f × %.2f m (L × H × W)", c.Label, c.Length, c.Height, c.Width))
	return btn
}
