// Command vizctl runs the chart validate/repair/theme pipeline and the data
// summarizer on local files, without a server or a model.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
