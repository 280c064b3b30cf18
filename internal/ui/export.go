package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"DigitPad/internal/effects"
	"DigitPad/internal/pad"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/charmbracelet/log"
)

const defaultExportName = "digit.png"

// writeExport picks the format from the file extension. Anything that is
// not .pdf is written as PNG.
func writeExport(ctrl *pad.Controller, name string, w io.Writer) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return ctrl.ExportPDF(w)
	default:
		return ctrl.ExportPNG(w)
	}
}

// showExportDialog asks for a destination and writes the drawing there.
func showExportDialog(win fyne.Window, ctrl *pad.Controller, logger *log.Logger) {
	if !ctrl.State().HasDrawn {
		ctrl.Notify(effects.LevelWarning, pad.MessageNoDrawing)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if wc == nil {
			return
		}
		defer func() {
			if err := wc.Close(); err != nil {
				logger.Warn("close export", "uri", wc.URI(), "err", err)
			}
		}()
		if err := writeExport(ctrl, wc.URI().Name(), wc); err != nil {
			logger.Error("export failed", "uri", wc.URI(), "err", err)
			ctrl.Notify(effects.LevelError, fmt.Sprintf("Export failed: %v", err))
			return
		}
		logger.Info("exported drawing", "uri", wc.URI())
		ctrl.Notify(effects.LevelInfo, pad.MessageExported)
	}, win)
	fs.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".pdf"}))
	fs.SetFileName(defaultExportName)
	fs.Show()
}
