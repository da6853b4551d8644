package display

import (
	"fmt"
	"os"

	"github.com/backmassage/mkvresort/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ""+
		" __  __  _           ____                           _   \n"+
		"|  \\/  || | __ __   __|  _ \\  ___  ___  ___   _ __ | |_ \n"+
		"| |\\/| || |/ / \\ \\ / /| |_) |/ _ \\/ __|/ _ \\ | '__|| __|\n"+
		"| |  | ||   <   \\ V / |  _ <|  __/\\__ \\ (_) || |   | |_ \n"+
		"|_|  |_||_|\\_\\   \\_/  |_| \\_\\\\___||___/\\___/ |_|    \\__|\n")
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
