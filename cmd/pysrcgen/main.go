package main

import (
	"io/ioutil"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/pysrcgen/pysrcgen/pythongen"
	"github.com/pysrcgen/pysrcgen/pythonjson"
)

func main() {
	args := struct {
		In     string `arg:"positional" help:"JSON-encoded tree to render, - for stdin"`
		Out    string `help:"file to write the generated source to, stdout when empty"`
		Indent string `help:"indentation unit"`
		Lines  bool   `help:"annotate statements with # line: N comments"`
	}{
		In:     "-",
		Indent: "    ",
	}
	arg.MustParse(&args)

	var contents []byte
	var err error
	if args.In == "-" {
		contents, err = ioutil.ReadAll(os.Stdin)
	} else {
		contents, err = ioutil.ReadFile(args.In)
	}
	noErr(err)

	root, err := pythonjson.Decode(contents)
	noErr(err)

	src, err := pythongen.Generate(root, pythongen.Options{
		Indent:      args.Indent,
		AddLineInfo: args.Lines,
	})
	noErr(err)

	if args.Out == "" {
		_, err = os.Stdout.WriteString(src)
	} else {
		err = ioutil.WriteFile(args.Out, []byte(src), 0644)
	}
	noErr(err)
}

func noErr(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}
