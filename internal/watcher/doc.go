// Package watcher notifies callers when individual files change on disk.
//
// Files are watched through their parent directory, so editors that save by
// writing a temporary file and renaming it over the original are still seen.
// Rapid bursts of events for the same file are coalesced into a single
// notification after a debounce delay.
//
// tupshar watches the sign list so edits to it show up without a restart:
//
//	w, err := watcher.New(watcher.WithDelay(200 * time.Millisecond))
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	err = w.Watch("/home/me/ogsl.json", func(ev watcher.Event) {
//		log.Printf("%s changed", ev.Path)
//	})
package watcher
