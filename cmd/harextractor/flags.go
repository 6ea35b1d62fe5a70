package main

import (
	"strings"

	"github.com/aleister1102/harextractor/internal/config"
	"github.com/aleister1102/harextractor/internal/models"
	"github.com/urfave/cli/v2"
)

type AppFlags struct {
	InputFile   string
	ConfigFile  string
	OutputPath  string
	Verbose     bool
	List        bool
	Iterative   bool
	Strict      bool
	Directories bool
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print every entry and where its body was written"},
		&cli.BoolFlag{Name: "list", Aliases: []string{"l"}, Usage: "list entries without writing anything"},
		&cli.BoolFlag{Name: "iterative", Aliases: []string{"i"}, Usage: "decode the archive incrementally to bound memory use"},
		&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Usage: "stop at the first entry that cannot be extracted"},
		&cli.BoolFlag{Name: "directories", Aliases: []string{"d"}, Usage: "lay files out as host/path instead of flat names"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory, or existing directory to create it in", TakesFile: true},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML or JSON configuration file", EnvVars: []string{config.ConfigPathEnvVar}, TakesFile: true},
	}
}

// ParseFlags reads the parsed command line. At most one archive may be named;
// none or "-" means stdin.
func ParseFlags(c *cli.Context) (AppFlags, error) {
	if c.NArg() > 1 {
		return AppFlags{}, models.NewUsageError("expected at most one archive, got %d arguments", c.NArg())
	}

	return AppFlags{
		InputFile:   c.Args().First(),
		ConfigFile:  c.String("config"),
		OutputPath:  c.String("output"),
		Verbose:     c.Bool("verbose"),
		List:        c.Bool("list"),
		Iterative:   c.Bool("iterative"),
		Strict:      c.Bool("strict"),
		Directories: c.Bool("directories"),
	}, nil
}

// hoistFlags moves flag arguments in front of positional ones, so that
// "harextractor capture.har -v" behaves like "harextractor -v capture.har".
// The cli parser stops at the first positional argument otherwise. Arguments
// after "--" are never treated as flags.
func hoistFlags(args []string, flags []cli.Flag) []string {
	if len(args) < 2 {
		return args
	}
	valueFlags := valueFlagNames(flags)

	hoisted := []string{args[0]}
	var positional []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			positional = append(append([]string{"--"}, positional...), rest[i+1:]...)
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}
		hoisted = append(hoisted, arg)
		if takesSeparateValue(arg, valueFlags) {
			if i+1 == len(rest) {
				// Leave the missing value for the parser to report.
				return args
			}
			i++
			hoisted = append(hoisted, rest[i])
		}
	}
	return append(hoisted, positional...)
}

func valueFlagNames(flags []cli.Flag) map[string]bool {
	names := make(map[string]bool)
	for _, f := range flags {
		if v, ok := f.(interface{ TakesValue() bool }); ok && v.TakesValue() {
			for _, name := range f.Names() {
				names[name] = true
			}
		}
	}
	return names
}

// takesSeparateValue reports whether arg is a flag whose value is the next
// argument. Combined short flags ("-lo") take a value when the last one does.
func takesSeparateValue(arg string, valueFlags map[string]bool) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	name := strings.TrimLeft(arg, "-")
	if valueFlags[name] {
		return true
	}
	if !strings.HasPrefix(arg, "--") && len(name) > 1 {
		return valueFlags[name[len(name)-1:]]
	}
	return false
}
