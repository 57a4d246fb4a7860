// Package app contains the core conversion logic. It defines the App struct,
// its resolved configuration, and the sequential pipeline that turns a
// loose-asset mod into the game's container triple, decoupled from the CLI
// entrypoint.
package app
