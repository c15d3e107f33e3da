package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dzjyyds666/pdx/pkg"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Scan .txt script files for mismatched braces",
	Args:  cobra.MaximumNArgs(1),
	Run:   checkRun,
}

func checkRun(cmd *cobra.Command, args []string) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := pkg.ListFilesByExt(dir, ".txt")
	if err != nil {
		fmt.Println("list files error:", err)
		return
	}

	mismatched := 0
	for _, path := range files {
		left, right, err := countBraces(path)
		if err != nil {
			fmt.Println("skip", path, "->", err)
			continue
		}
		if left != right {
			if mismatched == 0 {
				fmt.Println("Files with mismatched braces:")
			}
			mismatched++
			fmt.Printf("%s: {=%d, }=%d\n", path, left, right)
		}
	}
	if mismatched == 0 {
		fmt.Println("All files have matched braces.")
	}
}

// countBraces counts { and } per file, ignoring everything after a #
// on each line.
func countBraces(path string) (left, right int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		left += strings.Count(line, "{")
		right += strings.Count(line, "}")
	}
	return left, right, sc.Err()
}
