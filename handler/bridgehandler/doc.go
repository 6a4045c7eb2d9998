// Package bridgehandler forwards log entries to other logging libraries:
// zap, zerolog and logrus.
//
// The bridges let a configuration route a channel into an application's
// existing logging setup. Entry fields become native fields of the target
// library and the channel name travels with each record. Fatal and panic
// entries are recorded without exiting or panicking.
package bridgehandler
