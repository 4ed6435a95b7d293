//go:build headless

package main

import "errors"

func init() {
	compiledFeatures = append(compiledFeatures, "clipboard:headless")
}

func hostClipboardWrite(string) error {
	return errors.New("clipboard unavailable in headless mode")
}
