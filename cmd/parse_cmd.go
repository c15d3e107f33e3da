package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dzjyyds666/pdx/parse/pdx"
	"github.com/dzjyyds666/pdx/pkg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type ParseParams struct {
	Find   string `json:"find"`   // slash-separated key path to look up
	Input  string `json:"input"`  // input file path
	Output string `json:"output"` // output path, stdout when empty
	Format string `json:"format"` // yaml or json
}

var parseParams *ParseParams

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a script file and dump the document",
	Run:   parseRun,
}

func init() {
	parseParams = &ParseParams{}
	parseCmd.Flags().StringVarP(&parseParams.Find, "find", "f", "", "key path to find, e.g. equipments/ship_hull_light_1")
	parseCmd.Flags().StringVarP(&parseParams.Input, "input", "i", "", "input file path")
	parseCmd.Flags().StringVarP(&parseParams.Output, "output", "o", "", "output path")
	parseCmd.Flags().StringVar(&parseParams.Format, "format", "yaml", "output format: yaml or json")
}

func parseRun(cmd *cobra.Command, args []string) {
	if len(parseParams.Input) == 0 {
		fmt.Println("no input file path")
		return
	}
	exist, err := pkg.CheckFileExist(parseParams.Input)
	if err != nil {
		fmt.Println("check file exist error:", err)
		return
	}
	if !exist {
		fmt.Println("input file not exist")
		return
	}

	doc, err := pdx.ParseFile(parseParams.Input)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}

	var node pdx.Node = doc
	if parseParams.Find != "" {
		found, ok := pdx.Get(doc, strings.Split(parseParams.Find, "/")...)
		if !ok {
			fmt.Println("key not found:", parseParams.Find)
			return
		}
		node = found
	}

	out, err := renderNode(node, parseParams.Format)
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	if parseParams.Output == "" {
		fmt.Print(string(out))
		return
	}
	if err := os.WriteFile(parseParams.Output, out, 0o644); err != nil {
		fmt.Println("write output error:", err)
		return
	}
	fmt.Println("output saved to", parseParams.Output)
}

func renderNode(node pdx.Node, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml", "":
		return yaml.Marshal(node)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
