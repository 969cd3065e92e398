// Package confloader loads server configuration through koanf.
//
// Values merge from two sources, later ones winning: a YAML config
// file, then TRANSGATE_ environment variables. A companion fsnotify
// watcher reports config file changes so the server can hot-reload
// the log level.
package confloader
