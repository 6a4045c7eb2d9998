// Command nlogcheck inspects an NLog channel document.
//
//	nlogcheck validate [channel...]  build channels and report failures
//	nlogcheck channels               list channels and their inheritance
//	nlogcheck targets                list the built-in targets
//
// The document is read from --config, or --fallback when --config does
// not exist. --verbose logs factory diagnostics to stderr.
package main
