package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/hwconf/yamlpp/encode"
	"github.com/hwconf/yamlpp/load"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: build requires at least one file", cli.ErrUsage)
	}
	return buildFiles(cfg, cc.Out, args)
}

func buildFiles(cfg *BuildConfig, w io.Writer, files []string) error {
	for i, file := range files {
		node, err := load.Load(file)
		if err != nil {
			return err
		}
		if err := encode.Encode(node, w, cfg.encOpts(w)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if i < len(files)-1 {
			w.Write([]byte("---\n"))
		}
	}
	return nil
}
