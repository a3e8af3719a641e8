package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirm prints the prompt and reads one line; only "y" or "yes"
// (case-insensitive) proceeds.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
