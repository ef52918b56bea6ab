// Command lpfixture decodes backend polynomial dumps, computes BFV scaling
// factors and generates self-checking lattice problems.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"logproof-fixtures/backend"
	"logproof-fixtures/config"
	"logproof-fixtures/convert"
	"logproof-fixtures/internal/logging"
	"logproof-fixtures/plot"
	"logproof-fixtures/problem"
	"logproof-fixtures/prof"
	"logproof-fixtures/zq"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "lpfixture",
		Usage:     "Build and decode lattice problem fixtures",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				EnvVars: []string{"LPFIXTURE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Usage: "Application logging level {debug, info, warn, error, fatal}",
			},
			&cli.BoolFlag{
				Name:  "timings",
				Usage: "Print per-stage timings when the command finishes",
			},
		},
		Before: setup,
		After:  printTimings,
		Commands: []*cli.Command{
			decodeCommand(),
			deltaCommand(),
			plotCommand(),
			selftestCommand(),
		},
	}
}

// setup loads the configuration and installs the logger.
func setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	level := cfg.LogLevel
	if c.IsSet("loglevel") {
		level = c.String("loglevel")
	}
	log := logging.New(os.Stderr, level)
	logging.SetLogger(log)
	if cfg.Source() != "" {
		log.Debug().Str("file", cfg.Source()).Msg("loaded configuration")
	}
	c.App.Metadata = map[string]interface{}{"config": cfg}
	return nil
}

func configFrom(c *cli.Context) config.Config {
	if cfg, ok := c.App.Metadata["config"].(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func printTimings(c *cli.Context) error {
	entries := prof.SnapshotAndReset()
	if !c.Bool("timings") {
		return nil
	}
	for _, s := range prof.Summarize(entries) {
		fmt.Fprintf(c.App.Writer, "%-28s calls=%-4d total=%v\n", s.Label, s.Calls, s.Total)
	}
	return nil
}

var inputFlag = &cli.StringFlag{
	Name:     "input",
	Aliases:  []string{"i"},
	Usage:    "JSON polynomial dump",
	Required: true,
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "Decode a polynomial dump into centered small integers or ring polynomials",
		Flags: []cli.Flag{
			inputFlag,
			&cli.BoolFlag{
				Name:  "multiprecision",
				Usage: "Reconstruct full Z_q coefficients instead of small integers",
			},
		},
		Action: func(c *cli.Context) error {
			arr, moduli, err := backend.Load(c.String("input"))
			if err != nil {
				return err
			}
			if !c.Bool("multiprecision") {
				rows, err := convert.ToSmallInt(moduli, arr)
				if err != nil {
					return err
				}
				for i, row := range rows {
					fmt.Fprintf(c.App.Writer, "p%d: %v\n", i, row)
				}
				return nil
			}
			zr, err := configFrom(c).CoefficientRing()
			if err != nil {
				return err
			}
			polys, err := convert.ToPolynomial[zq.Elem](zr, arr)
			if err != nil {
				return err
			}
			for i, p := range polys {
				fmt.Fprintf(c.App.Writer, "p%d (deg %d): %v\n", i, p.Degree(), p.Coeffs)
			}
			return nil
		},
	}
}

func deltaCommand() *cli.Command {
	return &cli.Command{
		Name:  "delta",
		Usage: "Compute the BFV scaling factor floor(q/t)",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "t",
				Usage: "Plaintext modulus (defaults to the configured one)",
			},
			&cli.StringSliceFlag{
				Name:  "moduli",
				Usage: "RNS moduli whose product is q (defaults to the configured ring modulus)",
			},
			&cli.IntFlag{
				Name:  "limbs",
				Usage: "Output width in 64-bit limbs (defaults to delta-limbs)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			t := cfg.PlaintextModulus
			if c.IsSet("t") {
				t = c.Uint64("t")
			}
			n := cfg.DeltaLimbs
			if c.IsSet("limbs") {
				n = c.Int("limbs")
			}
			zr, err := cfg.CoefficientRing()
			if err != nil {
				return err
			}
			var delta zq.Uint
			if raw := c.StringSlice("moduli"); len(raw) > 0 {
				moduli, err := parseModuli(raw)
				if err != nil {
					return err
				}
				delta, err = convert.BFVDeltaFromModuli(zr, moduli, t, n)
				if err != nil {
					return err
				}
			} else {
				delta, err = convert.BFVDeltaUint(zr.ModulusUint(), t, n)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(c.App.Writer, "%s\n", delta)
			return nil
		},
	}
}

func parseModuli(raw []string) ([]backend.Modulus, error) {
	var values []uint64
	for _, field := range raw {
		for _, s := range strings.Split(field, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			v, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("modulus %q: %w", s, err)
			}
			values = append(values, v)
		}
	}
	return backend.Moduli(values...), nil
}

func plotCommand() *cli.Command {
	return &cli.Command{
		Name:  "plot",
		Usage: "Render a histogram of the centered coefficients of a dump",
		Flags: []cli.Flag{
			inputFlag,
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "coefficients.html",
				Usage:   "HTML file to write",
			},
			&cli.StringFlag{
				Name:  "title",
				Value: "Centered coefficients",
			},
		},
		Action: func(c *cli.Context) error {
			arr, moduli, err := backend.Load(c.String("input"))
			if err != nil {
				return err
			}
			rows, err := convert.ToSmallInt(moduli, arr)
			if err != nil {
				return err
			}
			f, err := os.Create(c.String("output"))
			if err != nil {
				return err
			}
			defer f.Close()
			if err := plot.RenderHistogram(f, c.String("title"), rows); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %s\n", c.String("output"))
			return nil
		},
	}
}

func selftestCommand() *cli.Command {
	return &cli.Command{
		Name:  "selftest",
		Usage: "Generate a random problem A·s = t, check it and print its digest",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rows", Value: 2},
			&cli.IntFlag{Name: "cols", Value: 3},
			&cli.Int64Flag{Name: "bound", Value: 2, Usage: "Secret coefficient bound"},
			&cli.StringFlag{Name: "seed", Value: "lpfixture"},
			&cli.StringFlag{
				Name:  "dump-secret",
				Usage: "Write the secret column as a JSON dump to this file",
			},
		},
		Action: func(c *cli.Context) error {
			defer prof.Track(time.Now(), "selftest")
			rq, err := configFrom(c).LattigoRing()
			if err != nil {
				return err
			}
			p, zr, err := problem.Generate(rq, c.Int("rows"), c.Int("cols"), c.Int64("bound"), []byte(c.String("seed")))
			if err != nil {
				return err
			}
			if err := p.CheckBounds(zr); err != nil {
				return err
			}
			if err := problem.CheckRelation(rq, zr, p); err != nil {
				return err
			}
			if path := c.String("dump-secret"); path != "" {
				if err := dumpSecret(path, p, zr); err != nil {
					return err
				}
			}
			fmt.Fprintf(c.App.Writer, "ok %dx%d q=%s digest=%x\n", p.A.Rows(), p.A.Cols(), zr.Modulus(), problem.Digest(p))
			return nil
		},
	}
}

// dumpSecret writes s in the single-limb backend layout, so decode and plot
// can read it back.
func dumpSecret(path string, p *problem.LatticeProblem[zq.Elem], zr *zq.Ring) error {
	q := zr.Modulus().Uint64()
	degree := p.F.Degree()
	words := make([]uint64, 0, p.S.Rows()*degree)
	for i := 0; i < p.S.Rows(); i++ {
		s := p.S.At(i, 0)
		for j := 0; j < degree; j++ {
			words = append(words, s.Coeff(j, zr.Zero()).Uint().Word(0)%q)
		}
	}
	moduli := backend.Moduli(q)
	arr, err := backend.FromRNS(moduli, p.S.Rows(), degree, words)
	if err != nil {
		return err
	}
	return backend.Save(path, arr, moduli)
}
