package main

import (
	"github.com/lehigh-university-libraries/rsciexport/cmd"
)

func main() {
	cmd.Execute()
}
