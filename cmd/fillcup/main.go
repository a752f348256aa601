package main

import "github.com/PabloGalante/fillyourcup/cmd/fillcup/root"

func main() {
	root.Execute()
}
