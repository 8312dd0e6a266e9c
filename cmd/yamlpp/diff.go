package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/hwconf/yamlpp/encode"
	"github.com/hwconf/yamlpp/load"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := resolveText(args[0])
	if err != nil {
		return err
	}
	b, err := resolveText(args[1])
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if cfg.Color {
		fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
	} else {
		for _, d := range diffs {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(cc.Out, "+%s", d.Text)
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(cc.Out, "-%s", d.Text)
			default:
				fmt.Fprint(cc.Out, d.Text)
			}
		}
	}
	return cli.ExitCodeErr(1)
}

func resolveText(file string) (string, error) {
	node, err := load.Load(file)
	if err != nil {
		return "", fmt.Errorf("error resolving %s: %w", file, err)
	}
	d, err := encode.Dump(node)
	if err != nil {
		return "", fmt.Errorf("error encoding %s: %w", file, err)
	}
	return string(d), nil
}
