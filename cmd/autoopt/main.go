// Command autoopt inspects and plots search-space files.
//
// Usage:
//
//	autoopt inspect --space svm.yaml
//	autoopt density --space svm.yaml --param nu --value A
//	autoopt plot --space svm.yaml --out plots --format svg
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
