// Command jqlfmt renders filter documents as query text and packs them into
// their binary form.
package main

import (
	"fmt"
	"os"

	"github.com/hugr-lab/jql-go/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
