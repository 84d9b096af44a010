package main

import "github.com/andrew-torda/stepgeom/pkg/stepgeom"

func main() {
	stepgeom.Execute()
}
