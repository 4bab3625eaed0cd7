package main

import (
	"log"
	"os"

	"github.com/alexflint/go-arg"

	"hydroqc/session"
)

type CmdArgs struct {
	Process *session.ProcessCmd `arg:"subcommand:process" help:"Run spike removal and quality coding over dumped series files"`
	Report  *session.ReportCmd  `arg:"subcommand:report" help:"Summarize a processed site per quality code"`
}

func (CmdArgs) Description() string {
	return "Quality-control engine for logged environmental sensor series."
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	args := CmdArgs{}
	parser := arg.MustParse(&args)

	switch {
	case args.Process != nil:
		args.Process.Execute()
	case args.Report != nil:
		args.Report.Execute()
	default:
		parser.WriteHelp(os.Stdout)
	}
}
