/*
Command proptree builds the paint property trees of HTML documents.

	proptree dump page.html         # print the property forests
	proptree dump --format dot a.html | dot -Tsvg -o a.svg
	proptree verify *.html          # check tree invariants

Settings are read from flags, from environment variables with prefix
PROPTREE (e.g. PROPTREE_FORMAT=dot) and from a configuration file
proptree.yaml, searched in the current directory and in
$HOME/.config/proptree:

	format: text        # text, dot or summary
	viewport: 1024x768
	trace: info         # error, info or debug
	parallel: 8         # documents processed concurrently

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
