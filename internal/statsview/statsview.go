// Package statsview serves live Go runtime statistics of the emulator, such
// as heap usage, goroutines and GC pauses, as charts in the browser.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the listen address of the statistics server.
const Address = "localhost:12600"

const path = "/debug/statsview"

// URL returns the address of the statistics page.
func URL() string {
	return "http://" + Address + path
}

// Launch starts the statistics server in a new goroutine. The server runs
// until the process exits.
func Launch(logger *log.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Runtime statistics server started", log.String("url", URL()))
}
