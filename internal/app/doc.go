// Package app is the composition root for pullview.
//
// Run loads config.toml and applies command-line overrides, sets up the log
// file, loads prefs, opens the source and fetches it once so the first frame
// has content. It then hands the store and source to the UI, which owns the
// refresh controller and blocks until the user quits or the context ends.
//
//	Run()
//	  ├─> settings()      config.Load + overrides + Validate
//	  ├─> logging.Setup() dated log file
//	  ├─> prefs.Load()    theme and haptics preference
//	  ├─> source.Open()   file tail or HTTP
//	  ├─> preload()       one fetch into state.Store
//	  └─> ui.Run()        blocks
//
// Only configuration and source errors are fatal. Fetch failures are kept in
// the store and shown in the header until a later refresh succeeds.
package app
