// Command inventario administra el inventario desde la terminal, sobre el mismo
// blob que usa el servidor HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := &cli{open: openEnv}
	err := newRootCmd(c).Execute()
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
