package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/project"
)

var containerCategoryOptions = []string{
	model.ContainerDry.String(),
	model.ContainerRefrigerated.String(),
}

func containerCategoryFromString(s string) model.ContainerCategory {
	if s == model.ContainerRefrigerated.String() {
		return model.ContainerRefrigerated
	}
	return model.ContainerDry
}

// ─── Container Catalog Dialog ──────────────────────────────

func (a *App) showContainerCatalogDialog() {
	presetList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		presetList.RemoveAll()

		if len(a.inventory.Containers) == 0 {
			presetList.Add(widget.NewLabel("No container types defined."))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("L × H × W (m)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Keywords", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		presetList.Add(header)
		presetList.Add(widget.NewSeparator())

		for i := range a.inventory.Containers {
			idx := i
			p := a.inventory.Containers[idx]
			name := p.Name
			if name == a.inventory.DefaultName {
				name += " (default)"
			}
			row := container.NewGridWithColumns(6,
				widget.NewLabel(name),
				widget.NewLabel(fmt.Sprintf("%.2f × %.2f × %.2f", p.Length, p.Height, p.Width)),
				widget.NewLabel(p.Category.String()),
				widget.NewLabel(strings.Join(p.Keywords, ", ")),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showEditPresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Containers = append(a.inventory.Containers[:idx], a.inventory.Containers[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			)
			presetList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Container Type", theme.ContentAddIcon(), func() {
		a.showPresetDialog(-1, refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		widget.NewLabel("Changes apply to the next manifest that is loaded or re-run."),
		nil, nil,
		container.NewVScroll(presetList),
	)

	d := dialog.NewCustom("Container Catalog", "Close", content, a.window)
	d.SetOnClosed(func() {
		a.rebuild(false)
	})
	d.Resize(fyne.NewSize(760, 500))
	d.Show()
}

func (a *App) showEditPresetDialog(idx int, onDone func()) {
	a.showPresetDialog(idx, onDone)
}

// showPresetDialog adds a preset when idx is negative and edits the preset
// at idx otherwise.
func (a *App) showPresetDialog(idx int, onDone func()) {
	p := model.NewContainerPreset("New Container", 12.03, 2.69, 2.35, model.ContainerDry)
	title, confirm := "Add Container Type", "Add"
	if idx >= 0 {
		p = a.inventory.Containers[idx]
		title, confirm = "Edit Container Type", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.2f", p.Length))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.2f", p.Height))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.2f", p.Width))

	maxVolumeEntry := widget.NewEntry()
	maxVolumeEntry.SetText(fmt.Sprintf("%.1f", p.MaxVolumeM3))

	maxWeightEntry := widget.NewEntry()
	maxWeightEntry.SetText(fmt.Sprintf("%.0f", p.MaxWeightKg))

	keywordsEntry := widget.NewEntry()
	keywordsEntry.SetPlaceHolder("high cube, dry")
	keywordsEntry.SetText(strings.Join(p.Keywords, ", "))

	categorySelect := widget.NewSelect(containerCategoryOptions, nil)
	categorySelect.SetSelected(p.Category.String())

	defaultCheck := widget.NewCheck("Use when no keyword matches", nil)
	defaultCheck.Checked = idx >= 0 && p.Name == a.inventory.DefaultName

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (m)", lengthEntry),
			widget.NewFormItem("Height (m)", heightEntry),
			widget.NewFormItem("Width (m)", widthEntry),
			widget.NewFormItem("Type", categorySelect),
			widget.NewFormItem("Max Volume (m³)", maxVolumeEntry),
			widget.NewFormItem("Max Weight (kg)", maxWeightEntry),
			widget.NewFormItem("Keywords", keywordsEntry),
			widget.NewFormItem("Default", defaultCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			length, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			height, _ := strconv.ParseFloat(heightEntry.Text, 64)
			width, _ := strconv.ParseFloat(widthEntry.Text, 64)
			maxVolume, _ := strconv.ParseFloat(maxVolumeEntry.Text, 64)
			maxWeight, _ := strconv.ParseFloat(maxWeightEntry.Text, 64)

			p.Name = strings.TrimSpace(nameEntry.Text)
			p.Length, p.Height, p.Width = length, height, width
			p.Category = containerCategoryFromString(categorySelect.Selected)
			p.MaxVolumeM3 = maxVolume
			p.MaxWeightKg = maxWeight
			p.Keywords = splitKeywords(keywordsEntry.Text)

			if _, err := p.ToContainer(); err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			if idx >= 0 {
				a.inventory.Containers[idx] = p
			} else {
				a.inventory.Containers = append(a.inventory.Containers, p)
			}
			if defaultCheck.Checked {
				a.inventory.DefaultName = p.Name
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 520))
	form.Show()
}

// splitKeywords parses a comma separated keyword list.
func splitKeywords(text string) []string {
	var out []string
	for _, k := range strings.Split(text, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Catalog now contains %d container types.", len(a.inventory.Containers)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Catalog exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("containers.json")
	d.Show()
}

// saveInventory persists the current catalog to disk.
func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save container catalog: %w", err), a.window)
	}
}
