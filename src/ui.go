package main

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/plusk0/gamelist/internal/catalog"
	"github.com/plusk0/gamelist/internal/images"
)

const (
	appID         = "io.github.plusk0.gamelist"
	windowTitle   = "Game List Builder"
	statusTimeout = 4 * time.Second
)

// runGUI opens the main window and blocks until it is closed.
func runGUI(a *application) {
	fa := app.NewWithID(appID)
	win := fa.NewWindow(windowTitle)
	win.SetContent(createUI(win, a))
	win.Resize(fyne.NewSize(800, 700))

	if err := a.store.LoadErr(); err != nil {
		dialog.ShowError(fmt.Errorf("the saved catalog could not be read and the list starts empty:\n%w", err), win)
	}

	win.ShowAndRun()
}

// catalogUI holds the widgets and the form state of the main window.
type catalogUI struct {
	win fyne.Window
	app *application

	// mode is Add or Edit(index) for the form.
	mode catalog.Mode

	idEntry, titleEntry, platformEntry, urlEntry, imageEntry *widget.Entry

	searchEntry *widget.Entry
	thumb       *canvas.Image
	rows        *fyne.Container
	submitBtn   *widget.Button
	cancelBtn   *widget.Button

	status    *widget.Label
	statusSeq int
}

// createUI builds the whole window content.
func createUI(win fyne.Window, a *application) fyne.CanvasObject {
	u := &catalogUI{win: win, app: a}

	u.idEntry = newEntry("ID")
	u.titleEntry = newEntry("Title")
	u.platformEntry = newEntry("Platform")
	u.urlEntry = newEntry("URL")
	u.imageEntry = newEntry("Image")
	// filled only by the image picker
	u.imageEntry.Disable()

	u.thumb = canvas.NewImageFromFile("")
	u.thumb.FillMode = canvas.ImageFillContain
	u.thumb.SetMinSize(fyne.NewSize(64, 64))
	u.thumb.Hide()

	u.searchEntry = widget.NewEntry()
	u.searchEntry.SetPlaceHolder("Search by title or platform...")
	u.searchEntry.OnChanged = func(string) { u.refresh() }

	pickBtn := widget.NewButtonWithIcon("Image", theme.FileImageIcon(), u.pickImage)
	u.submitBtn = widget.NewButtonWithIcon("Save game", theme.DocumentSaveIcon(), u.submit)
	u.submitBtn.Importance = widget.HighImportance
	u.cancelBtn = widget.NewButton("Cancel edit", u.resetForm)
	u.cancelBtn.Hide()
	exportBtn := widget.NewButtonWithIcon("Export", theme.UploadIcon(), u.export)
	importBtn := widget.NewButtonWithIcon("Import JSON", theme.FolderOpenIcon(), u.importJSON)
	saveAsBtn := widget.NewButtonWithIcon("Save JSON as", theme.DownloadIcon(), u.saveJSONAs)

	fieldsRow := container.NewGridWithColumns(3, u.idEntry, u.titleEntry, u.platformEntry)
	imageRow := container.NewBorder(nil, nil, nil, container.NewHBox(pickBtn, u.thumb), u.imageEntry)
	linkRow := container.NewGridWithColumns(2, u.urlEntry, imageRow)
	actions := container.NewHBox(u.submitBtn, u.cancelBtn, layout.NewSpacer(), importBtn, saveAsBtn, exportBtn)

	u.rows = container.NewVBox()
	scroll := container.NewVScroll(u.rows)
	scroll.SetMinSize(fyne.NewSize(600, 320))

	u.status = widget.NewLabel("")
	u.status.Truncation = fyne.TextTruncateEllipsis

	form := container.NewVBox(fieldsRow, linkRow, actions, u.searchEntry, widget.NewSeparator())

	u.refresh()
	return container.NewBorder(form, u.status, nil, nil, scroll)
}

func newEntry(label string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(label)
	return e
}

// refresh rebuilds the rows from the current search term. Each row keeps
// the game's catalog index so edit and delete address the right game.
func (u *catalogUI) refresh() {
	u.rows.Objects = nil
	for index, g := range u.app.store.Search(u.searchEntry.Text) {
		editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() { u.edit(index) })
		delBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { u.confirmDelete(index, g) })
		u.rows.Add(container.NewBorder(nil, nil, nil, container.NewHBox(editBtn, delBtn), widget.NewLabel(g.Label())))
	}
	if len(u.rows.Objects) == 0 {
		u.rows.Add(widget.NewLabel("No games"))
	}
	u.rows.Refresh()
}

func (u *catalogUI) formGame() catalog.Game {
	return catalog.Game{
		ID:       u.idEntry.Text,
		Title:    u.titleEntry.Text,
		Platform: u.platformEntry.Text,
		URL:      u.urlEntry.Text,
		Image:    u.imageEntry.Text,
	}
}

func (u *catalogUI) fillForm(g catalog.Game) {
	u.idEntry.SetText(g.ID)
	u.titleEntry.SetText(g.Title)
	u.platformEntry.SetText(g.Platform)
	u.urlEntry.SetText(g.URL)
	u.setImage(g.Image)
}

func (u *catalogUI) setImage(name string) {
	u.imageEntry.SetText(name)
	path := u.app.intake.Resolve(name)
	if path == "" {
		u.thumb.Hide()
		return
	}
	u.thumb.File = path
	u.thumb.Refresh()
	u.thumb.Show()
}

func (u *catalogUI) setMode(m catalog.Mode) {
	u.mode = m
	if _, editing := m.Editing(); editing {
		u.submitBtn.SetText("Update game")
		u.cancelBtn.Show()
		return
	}
	u.submitBtn.SetText("Save game")
	u.cancelBtn.Hide()
}

func (u *catalogUI) resetForm() {
	u.fillForm(catalog.Game{})
	u.setMode(catalog.AddMode())
}

func (u *catalogUI) submit() {
	next, err := u.app.store.Submit(u.mode, u.formGame())
	if errors.Is(err, catalog.ErrValidation) {
		u.notifyErr(err)
		return
	}
	// anything past validation has left edit mode
	u.fillForm(catalog.Game{})
	u.setMode(next)
	u.refresh()
	if err != nil {
		u.notifyErr(err)
		return
	}
	u.notify("Game saved")
}

func (u *catalogUI) edit(index int) {
	g, err := u.app.store.At(index)
	if err != nil {
		u.notifyErr(err)
		u.refresh()
		return
	}
	u.fillForm(g)
	u.setMode(catalog.EditMode(index))
}

func (u *catalogUI) confirmDelete(index int, g catalog.Game) {
	dialog.ShowConfirm("Delete", fmt.Sprintf("Delete %q?", g.Title), func(yes bool) {
		if !yes {
			return
		}
		err := u.app.store.Delete(index)
		if !errors.Is(err, catalog.ErrNotFound) {
			next, removed := u.mode.AfterDelete(index)
			if removed {
				u.resetForm()
			} else {
				u.setMode(next)
			}
		}
		u.refresh()
		if err != nil {
			u.notifyErr(err)
			return
		}
		u.notify(fmt.Sprintf("Deleted %s", g.Title))
	}, u.win)
}

func (u *catalogUI) pickImage() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			u.notifyErr(err)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()

		name, err := u.app.intake.Import(path)
		if err != nil {
			// the form keeps its previous image
			u.notifyErr(err)
			return
		}
		u.setImage(name)
		u.notify(fmt.Sprintf("Image '%s' copied", name))
	}, u.win)
	fd.SetFilter(storage.NewExtensionFileFilter(images.AllowedExtensions))
	fd.Show()
}

func (u *catalogUI) export() {
	if err := u.app.exporter.Export(u.app.store.Games()); err != nil {
		u.notifyErr(err)
		return
	}
	u.notify(fmt.Sprintf("Exported to %s", u.app.exporter.Path))
}

func (u *catalogUI) importJSON() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			u.notifyErr(err)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		games, err := catalog.ReadGames(r)
		if err != nil {
			u.notifyErr(fmt.Errorf("reading %s: %w", r.URI().Name(), err))
			return
		}
		dialog.ShowConfirm("Import", fmt.Sprintf("Replace the catalog with %d games from %s?", len(games), r.URI().Name()), func(yes bool) {
			if !yes {
				return
			}
			err := u.app.store.Replace(games)
			if err == nil || errors.Is(err, catalog.ErrPersistence) {
				u.resetForm()
				u.refresh()
			}
			if err != nil {
				u.notifyErr(err)
				return
			}
			u.notify(fmt.Sprintf("Imported %d games", len(games)))
		}, u.win)
	}, u.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (u *catalogUI) saveJSONAs() {
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			u.notifyErr(err)
			return
		}
		if uc == nil {
			return
		}
		defer uc.Close()
		if err := catalog.WriteGames(uc, u.app.store.Games()); err != nil {
			u.notifyErr(err)
			return
		}
		u.notify(fmt.Sprintf("Saved %s", uc.URI().Name()))
	}, u.win)
	fd.SetFileName("games.json")
	fd.Show()
}

// notify shows msg in the status line and clears it after statusTimeout
// unless a newer message replaced it.
func (u *catalogUI) notify(msg string) {
	u.statusSeq++
	seq := u.statusSeq
	u.status.SetText(msg)
	time.AfterFunc(statusTimeout, func() {
		fyne.Do(func() {
			if u.statusSeq == seq {
				u.status.SetText("")
			}
		})
	})
}

func (u *catalogUI) notifyErr(err error) {
	u.app.log.Debug().Err(err).Msg("operation failed")
	u.notify("Error: " + err.Error())
}
