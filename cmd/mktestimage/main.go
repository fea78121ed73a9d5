package main

import (
	"fmt"
	"os"

	"asciigen/internal/testimage"
)

func main() {
	if err := testimage.WriteFile("test_image.png"); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println("Created test_image.png")
}
