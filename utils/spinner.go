package utils

import (
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

var (
	activeSpinner *spinner.Spinner
	spinnerMu     sync.Mutex
)

// StartSpinner shows a progress indicator on stderr until StopSpinner
func StartSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if activeSpinner != nil {
		return
	}

	activeSpinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	activeSpinner.Suffix = " pricing resources..."
	activeSpinner.Start()
}

// StopSpinner is a no-op when no spinner is running
func StopSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if activeSpinner == nil {
		return
	}
	activeSpinner.Stop()
	activeSpinner = nil
}
